package models

import (
	"github.com/shopspring/decimal"
)

// Quote is a priced offer from a tradesperson against a maintenance request.
type Quote struct {
	ID               string          `json:"id"`
	TradespersonID   string          `json:"tradespersonId"`
	TradespersonName string          `json:"tradespersonName"`
	Amount           decimal.Decimal `json:"amount"`
	Details          string          `json:"details"`
	Status           QuoteStatus     `json:"status"`
}

// MaintenanceRequest is a reported issue at a property and its repair lifecycle.
// Urgency and SuggestedTradesperson come from AI triage at creation time.
type MaintenanceRequest struct {
	ID                     string             `json:"id"`
	PropertyID             string             `json:"propertyId"`
	PropertyAddress        string             `json:"propertyAddress"`
	Issue                  string             `json:"issue"`
	Status                 MaintenanceStatus  `json:"status"`
	Urgency                MaintenanceUrgency `json:"urgency"`
	SuggestedTradesperson  string             `json:"suggestedTradesperson"`
	AssignedTradespersonID *string            `json:"assignedTradespersonId"`
	Quotes                 []Quote            `json:"quotes"`
	FinalInvoiceURL        *string            `json:"finalInvoiceUrl"`
	ReportedDate           Date               `json:"reportedDate"`
	Cost                   decimal.Decimal    `json:"cost"`
	ExpenseTransactionID   *string            `json:"expenseTransactionId,omitempty"`
}

// IsOpen reports whether the request still needs attention.
func (m MaintenanceRequest) IsOpen() bool {
	return m.Status != MaintenanceStatusCompleted
}

// Clone returns a copy of m that shares no slices or pointers with it.
func (m MaintenanceRequest) Clone() MaintenanceRequest {
	out := m
	out.Quotes = make([]Quote, len(m.Quotes))
	copy(out.Quotes, m.Quotes)
	if m.AssignedTradespersonID != nil {
		id := *m.AssignedTradespersonID
		out.AssignedTradespersonID = &id
	}
	if m.FinalInvoiceURL != nil {
		url := *m.FinalInvoiceURL
		out.FinalInvoiceURL = &url
	}
	if m.ExpenseTransactionID != nil {
		id := *m.ExpenseTransactionID
		out.ExpenseTransactionID = &id
	}
	return out
}
