// Package compliance maps document expiry dates to risk buckets.
//
// Two ladders exist on purpose. The document table badge uses a 30/60 day
// ladder while the dashboard widget uses 7/30/60. They must stay separate:
// the same document can read "Expires Soon" in one place and "Upcoming" in
// the other.
package compliance

import (
	"math"
	"sort"

	"github.com/lacson1/UK-property-management/internal/models"
)

// Status is a named compliance bucket.
type Status string

const (
	StatusExpired     Status = "Expired"
	StatusUrgent      Status = "Urgent"
	StatusExpiresSoon Status = "Expires Soon"
	StatusUpcoming    Status = "Upcoming"
	StatusValid       Status = "Valid"
	StatusUnknown     Status = "Unknown"
	StatusNA          Status = "N/A"
)

// Color is the badge colour attached to a bucket.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorSlate  Color = "slate"
)

// Thresholds in days. Each bound is inclusive.
const (
	DashboardUrgentDays   = 7
	DashboardUpcomingDays = 30
	DashboardNoticeDays   = 60

	DocumentSoonDays     = 30
	DocumentUpcomingDays = 60
)

const day = 24 * 60 * 60 // seconds

// Result is the outcome of a compliance check.
type Result struct {
	Status   Status `json:"status"`
	DaysLeft *int   `json:"daysLeft"`
	Color    Color  `json:"color"`
}

// DaysUntil returns ceil((expiry - today) / 1 day).
// Both dates are calendar dates, so the division is exact in practice.
func DaysUntil(expiry, today models.Date) int {
	diff := expiry.Sub(today.Time).Seconds()
	return int(math.Ceil(diff / day))
}

// DocumentStatus is the badge shown in the document table.
func DocumentStatus(expiry *models.Date, today models.Date) Result {
	if expiry == nil || expiry.IsZero() {
		return Result{Status: StatusNA, Color: ColorSlate}
	}

	days := DaysUntil(*expiry, today)
	switch {
	case days < 0:
		return Result{Status: StatusExpired, DaysLeft: &days, Color: ColorRed}
	case days <= DocumentSoonDays:
		return Result{Status: StatusExpiresSoon, DaysLeft: &days, Color: ColorOrange}
	case days <= DocumentUpcomingDays:
		return Result{Status: StatusUpcoming, DaysLeft: &days, Color: ColorYellow}
	default:
		return Result{Status: StatusValid, DaysLeft: &days, Color: ColorGreen}
	}
}

// DashboardStatus is the badge shown in the dashboard compliance widget.
func DashboardStatus(expiry *models.Date, today models.Date) Result {
	if expiry == nil || expiry.IsZero() {
		return Result{Status: StatusUnknown, Color: ColorSlate}
	}

	days := DaysUntil(*expiry, today)
	switch {
	case days < 0:
		return Result{Status: StatusExpired, DaysLeft: &days, Color: ColorRed}
	case days <= DashboardUrgentDays:
		return Result{Status: StatusUrgent, DaysLeft: &days, Color: ColorRed}
	case days <= DashboardUpcomingDays:
		return Result{Status: StatusUpcoming, DaysLeft: &days, Color: ColorOrange}
	case days <= DashboardNoticeDays:
		return Result{Status: StatusUpcoming, DaysLeft: &days, Color: ColorYellow}
	default:
		return Result{Status: StatusValid, DaysLeft: &days, Color: ColorGreen}
	}
}

// Alert is a document that needs attention on the dashboard.
type Alert struct {
	DocumentID      string      `json:"documentId"`
	PropertyID      string      `json:"propertyId"`
	PropertyAddress string      `json:"propertyAddress"`
	FileName        string      `json:"fileName"`
	DocumentType    *string     `json:"documentType"`
	ExpiryDate      models.Date `json:"expiryDate"`
	Result          Result      `json:"compliance"`
}

// Alerts returns documents with a known expiry within horizonDays of today,
// expired ones included, soonest first. addresses maps property id to address.
func Alerts(docs []models.Document, addresses map[string]string, today models.Date, horizonDays int) []Alert {
	alerts := make([]Alert, 0)
	for _, doc := range docs {
		if doc.Extraction != models.ExtractionReady || doc.ExpiryDate == nil {
			continue
		}

		result := DashboardStatus(doc.ExpiryDate, today)
		if result.DaysLeft == nil || *result.DaysLeft > horizonDays {
			continue
		}

		alert := Alert{
			DocumentID:      doc.ID,
			PropertyID:      doc.PropertyID,
			PropertyAddress: addresses[doc.PropertyID],
			FileName:        doc.FileName,
			ExpiryDate:      *doc.ExpiryDate,
			Result:          result,
		}
		if doc.DocumentType != nil {
			docType := string(*doc.DocumentType)
			alert.DocumentType = &docType
		}
		alerts = append(alerts, alert)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return *alerts[i].Result.DaysLeft < *alerts[j].Result.DaysLeft
	})
	return alerts
}
