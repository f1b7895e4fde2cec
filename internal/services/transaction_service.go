package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lacson1/UK-property-management/internal/export"
	"github.com/lacson1/UK-property-management/internal/finance"
	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/store"
)

// RecentTaxYearCount is how many tax years TaxYears lists by default.
const RecentTaxYearCount = 5

// TransactionInput is the payload for recording income or an expense.
// A zero Date means today.
type TransactionInput struct {
	PropertyID  string                 `json:"propertyId" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount"`
	Date        models.Date            `json:"date"`
}

// TransactionService defines the ledger and financial reporting operations.
type TransactionService interface {
	// List returns transactions newest first, optionally for one property.
	List(ctx context.Context, propertyID string) []models.Transaction

	// Create records a transaction. Income that covers the property's rent
	// marks the rent Paid. Returns ErrPropertyNotFound or ErrInvalidInput.
	Create(ctx context.Context, in TransactionInput) (*models.Transaction, error)

	Summary(ctx context.Context, propertyID string) finance.Totals
	CashFlow(ctx context.Context) []finance.MonthBucket

	// Report returns ErrInvalidInput for a malformed filter. A filter that
	// matches nothing yields an empty report.
	Report(ctx context.Context, filter finance.ReportFilter) (finance.Report, error)

	AvailableYears(ctx context.Context) []int
	TaxYears(ctx context.Context, n int) []finance.TaxYear

	// TaxSummary asks the assistant to summarise a tax year.
	// Returns ErrInvalidInput, ErrNoTransactions or ErrAIService.
	TaxSummary(ctx context.Context, taxYear, propertyID string) (*export.TaxSummary, error)
}

type transactionService struct {
	store     *store.Store
	assistant Assistant
	today     Clock
	log       *logger.Logger
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(st *store.Store, assistant Assistant, today Clock, log *logger.Logger) TransactionService {
	return &transactionService{store: st, assistant: assistant, today: today, log: log}
}

func (s *transactionService) List(ctx context.Context, propertyID string) []models.Transaction {
	return transactionsFor(s.store.Snapshot().Transactions, propertyID)
}

func (s *transactionService) Create(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, in.Type)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	date := in.Date
	if date.IsZero() {
		date = s.today()
	}

	var (
		tx      models.Transaction
		settled bool
	)
	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		i := st.PropertyIndex(in.PropertyID)
		if i < 0 {
			return st, ErrPropertyNotFound
		}

		tx = models.Transaction{
			ID:              newID(),
			PropertyID:      in.PropertyID,
			PropertyAddress: st.Properties[i].Address,
			Type:            in.Type,
			Description:     description,
			Amount:          in.Amount,
			Date:            date,
		}
		st.Transactions = prependTransaction(st.Transactions, tx)

		if finance.SettlesRent(tx, st.Properties[i]) {
			st.Properties[i].RentStatus = models.RentStatusPaid
			settled = true
		}
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Transaction recorded", map[string]interface{}{
		"transaction_id": tx.ID,
		"property_id":    tx.PropertyID,
		"type":           tx.Type,
		"amount":         tx.Amount.StringFixed(2),
		"rent_settled":   settled,
	})
	return &tx, nil
}

func (s *transactionService) Summary(ctx context.Context, propertyID string) finance.Totals {
	return finance.ComputeTotals(transactionsFor(s.store.Snapshot().Transactions, propertyID))
}

func (s *transactionService) CashFlow(ctx context.Context) []finance.MonthBucket {
	return finance.CashFlow(s.store.Snapshot().Transactions, s.today())
}

func (s *transactionService) Report(ctx context.Context, filter finance.ReportFilter) (finance.Report, error) {
	state := s.store.Snapshot()
	report, err := finance.BuildReport(state.Transactions, filter, propertyLabel(state, filter.PropertyID))
	if err != nil {
		if errors.Is(err, finance.ErrInvalidPeriod) {
			return finance.Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return finance.Report{}, err
	}
	return report, nil
}

func (s *transactionService) AvailableYears(ctx context.Context) []int {
	return finance.AvailableYears(s.store.Snapshot().Transactions, s.today())
}

func (s *transactionService) TaxYears(ctx context.Context, n int) []finance.TaxYear {
	if n < 1 {
		n = RecentTaxYearCount
	}
	return finance.RecentTaxYears(s.today(), n)
}

func (s *transactionService) TaxSummary(ctx context.Context, taxYear, propertyID string) (*export.TaxSummary, error) {
	ty, err := finance.ParseTaxYear(taxYear)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if propertyID == "" {
		propertyID = finance.AllProperties
	}

	state := s.store.Snapshot()
	filter := finance.ReportFilter{PropertyID: propertyID, Period: finance.PeriodTaxYear, TaxYear: ty}
	txs := finance.FilterTransactions(state.Transactions, filter)
	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}

	label := propertyLabel(state, propertyID)
	body, err := s.assistant.TaxSummary(ctx, txs, label, ty.Label())
	if err != nil {
		s.log.Warn("Tax summary generation failed", map[string]interface{}{
			"tax_year":    ty.Label(),
			"property_id": propertyID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrAIService, err)
	}

	return &export.TaxSummary{
		PropertyID:    propertyID,
		PropertyLabel: label,
		TaxYear:       ty.Label(),
		Body:          body,
	}, nil
}

// propertyLabel names a report's property filter.
func propertyLabel(state store.State, propertyID string) string {
	if propertyID == "" || propertyID == finance.AllProperties {
		return "All Properties"
	}
	if i := state.PropertyIndex(propertyID); i >= 0 {
		return state.Properties[i].Address
	}
	return propertyID
}

func transactionsFor(txs []models.Transaction, propertyID string) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if propertyID == "" || propertyID == finance.AllProperties || tx.PropertyID == propertyID {
			filtered = append(filtered, tx)
		}
	}
	finance.SortNewestFirst(filtered)
	return filtered
}

// prependTransaction adds tx ahead of others on the same day and keeps the
// ledger newest first.
func prependTransaction(txs []models.Transaction, tx models.Transaction) []models.Transaction {
	out := append([]models.Transaction{tx}, txs...)
	finance.SortNewestFirst(out)
	return out
}
