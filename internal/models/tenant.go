package models

import (
	"github.com/shopspring/decimal"
)

// Tenant represents the occupant of a property and their tenancy terms.
// PropertyAddress is a snapshot taken when the tenancy was created.
type Tenant struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	PropertyID      string          `json:"propertyId"`
	PropertyAddress string          `json:"propertyAddress"`
	LeaseStartDate  Date            `json:"leaseStartDate"`
	LeaseEndDate    Date            `json:"leaseEndDate"`
	DepositAmount   decimal.Decimal `json:"depositAmount"`
	DepositScheme   DepositScheme   `json:"depositScheme"`
}
