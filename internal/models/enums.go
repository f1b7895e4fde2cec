package models

// PropertyType is the ownership structure of a property.
type PropertyType string

const (
	PropertyTypeLTD      PropertyType = "LTD"
	PropertyTypePersonal PropertyType = "Personal"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeLTD, PropertyTypePersonal:
		return true
	}
	return false
}

// PropertyStatus is the letting status of a property.
type PropertyStatus string

const (
	PropertyStatusOccupied   PropertyStatus = "Occupied"
	PropertyStatusVacant     PropertyStatus = "Vacant"
	PropertyStatusUnderOffer PropertyStatus = "Under Offer"
)

// Valid reports whether s is a known property status.
func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusOccupied, PropertyStatusVacant, PropertyStatusUnderOffer:
		return true
	}
	return false
}

// RentStatus is the rent collection state of a property.
type RentStatus string

const (
	RentStatusPaid          RentStatus = "Paid"
	RentStatusOverdue       RentStatus = "Overdue"
	RentStatusPartiallyPaid RentStatus = "Partially Paid"
)

// Valid reports whether s is a known rent status.
func (s RentStatus) Valid() bool {
	switch s {
	case RentStatusPaid, RentStatusOverdue, RentStatusPartiallyPaid:
		return true
	}
	return false
}

// MaintenanceStatus is the lifecycle stage of a maintenance request.
type MaintenanceStatus string

const (
	MaintenanceStatusNew           MaintenanceStatus = "New"
	MaintenanceStatusInProgress    MaintenanceStatus = "In Progress"
	MaintenanceStatusAwaitingQuote MaintenanceStatus = "Awaiting Quote"
	MaintenanceStatusQuoteApproved MaintenanceStatus = "Quote Approved"
	MaintenanceStatusWorkComplete  MaintenanceStatus = "Work Complete"
	MaintenanceStatusCompleted     MaintenanceStatus = "Completed"
)

// MaintenanceStatuses lists every status in lifecycle order.
var MaintenanceStatuses = []MaintenanceStatus{
	MaintenanceStatusNew,
	MaintenanceStatusInProgress,
	MaintenanceStatusAwaitingQuote,
	MaintenanceStatusQuoteApproved,
	MaintenanceStatusWorkComplete,
	MaintenanceStatusCompleted,
}

// Rank returns the position of s in the lifecycle, or -1 if s is unknown.
func (s MaintenanceStatus) Rank() int {
	for i, status := range MaintenanceStatuses {
		if status == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known maintenance status.
func (s MaintenanceStatus) Valid() bool {
	return s.Rank() >= 0
}

// MaintenanceUrgency is the triage level of a maintenance request.
type MaintenanceUrgency string

const (
	UrgencyLow       MaintenanceUrgency = "Low"
	UrgencyMedium    MaintenanceUrgency = "Medium"
	UrgencyHigh      MaintenanceUrgency = "High"
	UrgencyEmergency MaintenanceUrgency = "Emergency"
)

// Urgencies lists every urgency level, least urgent first.
var Urgencies = []MaintenanceUrgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency}

// Valid reports whether u is a known urgency level.
func (u MaintenanceUrgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

// QuoteStatus is the decision state of a tradesperson quote.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "Pending"
	QuoteStatusApproved QuoteStatus = "Approved"
	QuoteStatusRejected QuoteStatus = "Rejected"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// DocumentType is the compliance category of an uploaded document.
type DocumentType string

const (
	DocumentTypeGasSafety DocumentType = "Gas Safety Certificate"
	DocumentTypeEICR      DocumentType = "Electrical Installation Condition Report (EICR)"
	DocumentTypeEPC       DocumentType = "Energy Performance Certificate (EPC)"
	DocumentTypeOther     DocumentType = "Other"
)

// DocumentTypes lists the closed set of document categories.
var DocumentTypes = []DocumentType{
	DocumentTypeGasSafety,
	DocumentTypeEICR,
	DocumentTypeEPC,
	DocumentTypeOther,
}

// Valid reports whether t is one of the known document categories.
func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DepositScheme is the government-backed scheme protecting a tenant deposit.
type DepositScheme string

const (
	DepositSchemeTDS        DepositScheme = "Tenancy Deposit Scheme (TDS)"
	DepositSchemeDPS        DepositScheme = "Deposit Protection Service (DPS)"
	DepositSchemeMyDeposits DepositScheme = "MyDeposits"
)

// Valid reports whether s is a known deposit scheme.
func (s DepositScheme) Valid() bool {
	switch s {
	case DepositSchemeTDS, DepositSchemeDPS, DepositSchemeMyDeposits:
		return true
	}
	return false
}
