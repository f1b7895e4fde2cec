// Package finance aggregates transactions into totals, cash-flow series and
// period reports. Every function is pure and safe on an empty input.
package finance

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lacson1/UK-property-management/internal/models"
)

// AllProperties is the property filter value meaning "every property".
const AllProperties = "all"

// CashFlowMonths is the length of the rolling cash-flow window.
const CashFlowMonths = 12

// Period selects how a report filters transactions by date.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodAnnual  Period = "annual"
	PeriodTaxYear Period = "tax-year"
)

// ErrInvalidPeriod is returned when a report filter is malformed.
var ErrInvalidPeriod = errors.New("invalid report period")

// Totals is income, expense and their difference.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// MonthBucket is one month of the cash-flow series.
type MonthBucket struct {
	Key     string          `json:"key"`
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ReportFilter narrows a report to a property and a period.
type ReportFilter struct {
	PropertyID string
	Period     Period
	Year       int
	Month      time.Month
	TaxYear    TaxYear
}

// Report is the result of filtering transactions and re-totalling them.
type Report struct {
	Title        string               `json:"title"`
	Period       Period               `json:"period"`
	PropertyID   string               `json:"propertyId"`
	Totals
	Transactions []models.Transaction `json:"transactions"`
}

// ComputeTotals sums income and expense and derives the net.
func ComputeTotals(txs []models.Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Net: income.Sub(expense)}
}

// monthKey formats the year-month bucket key of a date.
func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// CashFlow builds the 12 calendar-month series ending at today's month.
// Buckets are ordered oldest to newest; transactions outside the window are ignored.
func CashFlow(txs []models.Transaction, today models.Date) []MonthBucket {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]MonthBucket, 0, CashFlowMonths)
	index := make(map[string]int, CashFlowMonths)
	for i := CashFlowMonths - 1; i >= 0; i-- {
		month := first.AddDate(0, -i, 0)
		key := monthKey(month.Year(), month.Month())
		index[key] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Key:     key,
			Month:   month.Format("Jan 06"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}

	for _, tx := range txs {
		i, ok := index[monthKey(tx.Date.Year(), tx.Date.Month())]
		if !ok {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			buckets[i].Income = buckets[i].Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			buckets[i].Expense = buckets[i].Expense.Add(tx.Amount)
		}
	}

	return buckets
}

// Validate checks that the filter names a usable period.
func (f ReportFilter) Validate() error {
	switch f.Period {
	case PeriodMonthly:
		if f.Month < time.January || f.Month > time.December {
			return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidPeriod, f.Month)
		}
		if f.Year <= 0 {
			return fmt.Errorf("%w: year is required", ErrInvalidPeriod)
		}
	case PeriodAnnual:
		if f.Year <= 0 {
			return fmt.Errorf("%w: year is required", ErrInvalidPeriod)
		}
	case PeriodTaxYear:
		if f.TaxYear.StartYear <= 0 {
			return fmt.Errorf("%w: tax year is required", ErrInvalidPeriod)
		}
	default:
		return fmt.Errorf("%w: unknown period %q", ErrInvalidPeriod, f.Period)
	}
	return nil
}

// Matches reports whether tx passes the property and period filter.
func (f ReportFilter) Matches(tx models.Transaction) bool {
	if f.PropertyID != "" && f.PropertyID != AllProperties && tx.PropertyID != f.PropertyID {
		return false
	}

	switch f.Period {
	case PeriodMonthly:
		return tx.Date.Year() == f.Year && tx.Date.Month() == f.Month
	case PeriodAnnual:
		return tx.Date.Year() == f.Year
	case PeriodTaxYear:
		return f.TaxYear.Contains(tx.Date)
	}
	return false
}

// periodLabel describes the filter period for report titles.
func (f ReportFilter) periodLabel() string {
	switch f.Period {
	case PeriodMonthly:
		return fmt.Sprintf("%s %d", f.Month.String(), f.Year)
	case PeriodAnnual:
		return fmt.Sprintf("Year %d", f.Year)
	case PeriodTaxYear:
		return "Tax Year " + f.TaxYear.Label()
	}
	return ""
}

// FilterTransactions returns the transactions matching f, newest first.
func FilterTransactions(txs []models.Transaction, f ReportFilter) []models.Transaction {
	filtered := make([]models.Transaction, 0)
	for _, tx := range txs {
		if f.Matches(tx) {
			filtered = append(filtered, tx)
		}
	}
	SortNewestFirst(filtered)
	return filtered
}

// BuildReport filters txs and re-totals the result. propertyLabel names the
// property (or "All Properties") in the title. An empty match is not an error.
func BuildReport(txs []models.Transaction, f ReportFilter, propertyLabel string) (Report, error) {
	if err := f.Validate(); err != nil {
		return Report{}, err
	}

	filtered := FilterTransactions(txs, f)
	propertyID := f.PropertyID
	if propertyID == "" {
		propertyID = AllProperties
	}

	return Report{
		Title:        fmt.Sprintf("Report for %s - %s", f.periodLabel(), propertyLabel),
		Period:       f.Period,
		PropertyID:   propertyID,
		Totals:       ComputeTotals(filtered),
		Transactions: filtered,
	}, nil
}

// AvailableYears returns the distinct transaction years, newest first.
// With no transactions it returns today's year alone.
func AvailableYears(txs []models.Transaction, today models.Date) []int {
	if len(txs) == 0 {
		return []int{today.Year()}
	}

	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, tx := range txs {
		year := tx.Date.Year()
		if _, ok := seen[year]; ok {
			continue
		}
		seen[year] = struct{}{}
		years = append(years, year)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// SortNewestFirst orders transactions by date descending, keeping insertion
// order for transactions on the same day.
func SortNewestFirst(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}

// SettlesRent reports whether tx pays the property's rent in full.
// Only income of at least the current rent counts.
func SettlesRent(tx models.Transaction, property models.Property) bool {
	if tx.Type != models.TransactionTypeIncome || tx.PropertyID != property.ID {
		return false
	}
	return tx.Amount.GreaterThanOrEqual(property.CurrentRent)
}
