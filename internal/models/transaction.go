package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense entry against a property.
type Transaction struct {
	ID                   string          `json:"id"`
	PropertyID           string          `json:"propertyId"`
	PropertyAddress      string          `json:"propertyAddress"`
	Type                 TransactionType `json:"type"`
	Description          string          `json:"description"`
	Amount               decimal.Decimal `json:"amount"`
	Date                 Date            `json:"date"`
	MaintenanceRequestID *string         `json:"maintenanceRequestId,omitempty"`
}

// Tradesperson is a contractor the landlord can assign work to.
type Tradesperson struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Trade   string `json:"trade"`
	Contact string `json:"contact"`
}
