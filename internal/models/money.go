package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Money goes over the wire as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// FormatGBP renders an amount as pounds with two decimals, e.g. £1200.00.
func FormatGBP(amount decimal.Decimal) string {
	return "£" + amount.StringFixed(2)
}
