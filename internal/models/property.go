package models

import (
	"github.com/shopspring/decimal"
)

// Property represents a single let property in the portfolio.
type Property struct {
	ID          string          `json:"id"`
	Address     string          `json:"address"`
	Type        PropertyType    `json:"type"`
	Status      PropertyStatus  `json:"status"`
	RentStatus  RentStatus      `json:"rentStatus"`
	CurrentRent decimal.Decimal `json:"currentRent"`
}

// Normalize enforces the property invariants and returns the result.
// A vacant property has nothing to collect, so its rent status reads as Paid.
func (p Property) Normalize() Property {
	if p.Status == PropertyStatusVacant {
		p.RentStatus = RentStatusPaid
	}
	return p
}

// IsLettable reports whether a new tenant may be placed in the property.
func (p Property) IsLettable() bool {
	return p.Status != PropertyStatusUnderOffer
}
