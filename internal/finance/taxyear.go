package finance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lacson1/UK-property-management/internal/models"
)

// ErrInvalidTaxYear is returned when a tax year label cannot be parsed.
var ErrInvalidTaxYear = errors.New("invalid tax year")

// UK tax years run from 6 April to 5 April the following year.
const (
	taxYearStartMonth = time.April
	taxYearStartDay   = 6
)

// TaxYear identifies a UK fiscal year by the calendar year it starts in.
type TaxYear struct {
	StartYear int
}

// Label formats the tax year as "2024/25".
func (ty TaxYear) Label() string {
	return fmt.Sprintf("%d/%02d", ty.StartYear, (ty.StartYear+1)%100)
}

// String implements fmt.Stringer.
func (ty TaxYear) String() string {
	return ty.Label()
}

// Start returns 6 April of the start year.
func (ty TaxYear) Start() models.Date {
	return models.NewDate(ty.StartYear, taxYearStartMonth, taxYearStartDay)
}

// End returns 5 April of the following year.
func (ty TaxYear) End() models.Date {
	return models.NewDate(ty.StartYear+1, taxYearStartMonth, taxYearStartDay-1)
}

// Contains reports whether d falls within the tax year, both ends inclusive.
func (ty TaxYear) Contains(d models.Date) bool {
	return !d.Before(ty.Start()) && !d.After(ty.End())
}

// TaxYearFor returns the tax year that contains d.
func TaxYearFor(d models.Date) TaxYear {
	if d.Before(models.NewDate(d.Year(), taxYearStartMonth, taxYearStartDay)) {
		return TaxYear{StartYear: d.Year() - 1}
	}
	return TaxYear{StartYear: d.Year()}
}

// CurrentTaxYear returns the tax year containing today.
// On or before 5 April that is the year which started the previous April.
func CurrentTaxYear(today models.Date) TaxYear {
	return TaxYearFor(today)
}

// RecentTaxYears returns the current tax year and the n-1 before it, newest first.
func RecentTaxYears(today models.Date, n int) []TaxYear {
	current := CurrentTaxYear(today)
	years := make([]TaxYear, 0, n)
	for i := 0; i < n; i++ {
		years = append(years, TaxYear{StartYear: current.StartYear - i})
	}
	return years
}

// ParseTaxYear parses labels such as "2024/25" or "2024/2025".
// The end part must be the year after the start year.
func ParseTaxYear(label string) (TaxYear, error) {
	parts := strings.Split(strings.TrimSpace(label), "/")
	if len(parts) != 2 {
		return TaxYear{}, fmt.Errorf("%w: %q", ErrInvalidTaxYear, label)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return TaxYear{}, fmt.Errorf("%w: %q", ErrInvalidTaxYear, label)
	}

	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return TaxYear{}, fmt.Errorf("%w: %q", ErrInvalidTaxYear, label)
	}

	switch len(parts[1]) {
	case 2:
		if end != (start+1)%100 {
			return TaxYear{}, fmt.Errorf("%w: %q does not span consecutive years", ErrInvalidTaxYear, label)
		}
	case 4:
		if end != start+1 {
			return TaxYear{}, fmt.Errorf("%w: %q does not span consecutive years", ErrInvalidTaxYear, label)
		}
	default:
		return TaxYear{}, fmt.Errorf("%w: %q", ErrInvalidTaxYear, label)
	}

	return TaxYear{StartYear: start}, nil
}
