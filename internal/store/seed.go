package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lacson1/UK-property-management/internal/models"
)

// demoNamespace derives stable ids for the demo portfolio.
var demoNamespace = uuid.MustParse("6f1c8a52-3b1e-4d0c-9a57-2f0d7e4b9c11")

// demoEpoch is the month the demo data was written against.
var demoEpoch = models.NewDate(2024, time.May, 1)

// DemoID returns the stable id of a demo record.
func DemoID(key string) string {
	return uuid.NewSHA1(demoNamespace, []byte(key)).String()
}

// Demo builds the demo portfolio with dates moved forward so the latest
// month of activity is today's month.
func Demo(today models.Date) State {
	offset := (today.Year()-demoEpoch.Year())*12 + int(today.Month()-demoEpoch.Month())
	shift := func(s string) models.Date {
		return models.DateOf(models.MustParseDate(s).AddDate(0, offset, 0))
	}
	gbp := decimal.NewFromInt
	id := DemoID
	ptr := func(s string) *string { return &s }

	addresses := map[string]string{
		"p1": "123 Coronation Street, Manchester",
		"p2": "22 Baker Street, London",
		"p3": "15 Princes Street, Edinburgh",
		"p4": "45 Broad Street, Bristol",
		"p5": "8 Abbey Road, Liverpool",
	}

	properties := []models.Property{
		{ID: id("p1"), Address: addresses["p1"], Type: models.PropertyTypePersonal, Status: models.PropertyStatusOccupied, RentStatus: models.RentStatusPaid, CurrentRent: gbp(1200)},
		{ID: id("p2"), Address: addresses["p2"], Type: models.PropertyTypeLTD, Status: models.PropertyStatusOccupied, RentStatus: models.RentStatusOverdue, CurrentRent: gbp(2500)},
		{ID: id("p3"), Address: addresses["p3"], Type: models.PropertyTypeLTD, Status: models.PropertyStatusVacant, RentStatus: models.RentStatusPaid, CurrentRent: gbp(1500)},
		{ID: id("p4"), Address: addresses["p4"], Type: models.PropertyTypePersonal, Status: models.PropertyStatusOccupied, RentStatus: models.RentStatusPaid, CurrentRent: gbp(950)},
		{ID: id("p5"), Address: addresses["p5"], Type: models.PropertyTypeLTD, Status: models.PropertyStatusUnderOffer, RentStatus: models.RentStatusPaid, CurrentRent: gbp(800)},
	}

	tenants := []models.Tenant{
		{ID: id("t1"), Name: "John Smith", Email: "john.smith@example.com", Phone: "07123456789", PropertyID: id("p1"), PropertyAddress: addresses["p1"],
			LeaseStartDate: shift("2023-08-01"), LeaseEndDate: shift("2024-07-31"), DepositAmount: gbp(1500), DepositScheme: models.DepositSchemeDPS},
		{ID: id("t2"), Name: "Jane Doe", Email: "jane.doe@example.com", Phone: "07987654321", PropertyID: id("p2"), PropertyAddress: addresses["p2"],
			LeaseStartDate: shift("2022-05-15"), LeaseEndDate: shift("2024-05-14"), DepositAmount: gbp(3000), DepositScheme: models.DepositSchemeMyDeposits},
		{ID: id("t3"), Name: "Peter Jones", Email: "peter.jones@example.com", Phone: "07777111222", PropertyID: id("p4"), PropertyAddress: addresses["p4"],
			LeaseStartDate: shift("2024-01-10"), LeaseEndDate: shift("2025-01-09"), DepositAmount: gbp(1100), DepositScheme: models.DepositSchemeTDS},
	}

	tradespeople := []models.Tradesperson{
		{ID: id("tp1"), Name: "Northern Plumbing Ltd", Trade: "Plumber", Contact: "0161 555 0101"},
		{ID: id("tp2"), Name: "SafeHeat Gas Services", Trade: "Gas Engineer", Contact: "0161 555 0199"},
		{ID: id("tp3"), Name: "Bristol Fencing & Garden", Trade: "General Handyman", Contact: "0117 555 0142"},
		{ID: id("tp4"), Name: "Capital Locksmiths", Trade: "Locksmith", Contact: "020 7946 0321"},
	}

	maintenance := []models.MaintenanceRequest{
		{ID: id("m5"), PropertyID: id("p3"), PropertyAddress: addresses["p3"], Issue: "End of tenancy deep clean required",
			Status: models.MaintenanceStatusNew, Urgency: models.UrgencyLow, SuggestedTradesperson: "Cleaning Service", ReportedDate: shift("2024-05-21"), Cost: decimal.Zero},
		{ID: id("m1"), PropertyID: id("p2"), PropertyAddress: addresses["p2"], Issue: "Leaking tap in kitchen",
			Status: models.MaintenanceStatusNew, Urgency: models.UrgencyMedium, SuggestedTradesperson: "Plumber", ReportedDate: shift("2024-05-20"), Cost: decimal.Zero},
		{ID: id("m2"), PropertyID: id("p1"), PropertyAddress: addresses["p1"], Issue: "Boiler not providing hot water",
			Status: models.MaintenanceStatusInProgress, Urgency: models.UrgencyHigh, SuggestedTradesperson: "Gas Engineer", ReportedDate: shift("2024-05-18"), Cost: decimal.Zero,
			AssignedTradespersonID: ptr(id("tp2"))},
		{ID: id("m3"), PropertyID: id("p4"), PropertyAddress: addresses["p4"], Issue: "Fence panel blown down in storm",
			Status: models.MaintenanceStatusCompleted, Urgency: models.UrgencyLow, SuggestedTradesperson: "General Handyman", ReportedDate: shift("2024-04-10"), Cost: gbp(150),
			AssignedTradespersonID: ptr(id("tp3")), ExpenseTransactionID: ptr(id("tr7"))},
		{ID: id("m4"), PropertyID: id("p2"), PropertyAddress: addresses["p2"], Issue: "Front door lock is sticking",
			Status: models.MaintenanceStatusCompleted, Urgency: models.UrgencyMedium, SuggestedTradesperson: "Locksmith", ReportedDate: shift("2024-03-25"), Cost: gbp(85),
			AssignedTradespersonID: ptr(id("tp4")), ExpenseTransactionID: ptr(id("tr11"))},
	}
	for i := range maintenance {
		maintenance[i].Quotes = []models.Quote{}
	}

	income := func(key, property, description, date string, amount int64) models.Transaction {
		return models.Transaction{ID: id(key), PropertyID: id(property), PropertyAddress: addresses[property],
			Type: models.TransactionTypeIncome, Description: description, Amount: gbp(amount), Date: shift(date)}
	}
	expense := func(key, property, description, date string, amount int64, request string) models.Transaction {
		tx := models.Transaction{ID: id(key), PropertyID: id(property), PropertyAddress: addresses[property],
			Type: models.TransactionTypeExpense, Description: description, Amount: gbp(amount), Date: shift(date)}
		if request != "" {
			tx.MaintenanceRequestID = ptr(id(request))
		}
		return tx
	}

	month := func(date string) string {
		return shift(date).Format("January")
	}

	transactions := []models.Transaction{
		income("tr1", "p1", month("2024-05-01")+" Rent", "2024-05-01", 1200),
		income("tr2", "p2", month("2024-05-01")+" Rent", "2024-05-01", 2500),
		income("tr3", "p4", month("2024-05-01")+" Rent", "2024-05-01", 950),
		expense("tr7", "p4", "Fence Repair", "2024-04-12", 150, "m3"),
		income("tr4", "p1", month("2024-04-01")+" Rent", "2024-04-01", 1200),
		income("tr5", "p2", month("2024-04-01")+" Rent", "2024-04-01", 2500),
		income("tr6", "p4", month("2024-04-01")+" Rent", "2024-04-01", 950),
		expense("tr11", "p2", "Locksmith for front door", "2024-03-26", 85, "m4"),
		expense("tr12", "p3", "Gas Safety Certificate", "2024-03-15", 75, ""),
		income("tr8", "p1", month("2024-03-01")+" Rent", "2024-03-01", 1200),
		income("tr9", "p2", month("2024-03-01")+" Rent", "2024-03-01", 2500),
		income("tr10", "p4", month("2024-03-01")+" Rent", "2024-03-01", 950),
	}

	return State{
		Properties:   properties,
		Tenants:      tenants,
		Maintenance:  maintenance,
		Transactions: transactions,
		Documents:    []models.Document{},
		Tradespeople: tradespeople,
	}
}
