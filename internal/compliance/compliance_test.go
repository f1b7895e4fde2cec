package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacson1/UK-property-management/internal/models"
)

var today = models.NewDate(2026, 10, 15)

func expiryIn(days int) *models.Date {
	d := today.AddDays(days)
	return &d
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, DaysUntil(today, today))
	assert.Equal(t, 1, DaysUntil(today.AddDays(1), today))
	assert.Equal(t, -1, DaysUntil(today.AddDays(-1), today))
	assert.Equal(t, 366, DaysUntil(models.NewDate(2027, 10, 16), today))
}

func TestDocumentStatus(t *testing.T) {
	tests := []struct {
		name   string
		expiry *models.Date
		status Status
		color  Color
	}{
		{"no date", nil, StatusNA, ColorSlate},
		{"yesterday", expiryIn(-1), StatusExpired, ColorRed},
		{"today", expiryIn(0), StatusExpiresSoon, ColorOrange},
		{"one week", expiryIn(7), StatusExpiresSoon, ColorOrange},
		{"thirty days", expiryIn(30), StatusExpiresSoon, ColorOrange},
		{"thirty one days", expiryIn(31), StatusUpcoming, ColorYellow},
		{"sixty days", expiryIn(60), StatusUpcoming, ColorYellow},
		{"sixty one days", expiryIn(61), StatusValid, ColorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DocumentStatus(tt.expiry, today)
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.color, result.Color)
			if tt.expiry == nil {
				assert.Nil(t, result.DaysLeft)
			} else {
				require.NotNil(t, result.DaysLeft)
			}
		})
	}
}

func TestDashboardStatus(t *testing.T) {
	tests := []struct {
		name   string
		expiry *models.Date
		status Status
		color  Color
	}{
		{"no date", nil, StatusUnknown, ColorSlate},
		{"yesterday", expiryIn(-1), StatusExpired, ColorRed},
		{"today", expiryIn(0), StatusUrgent, ColorRed},
		{"seven days", expiryIn(7), StatusUrgent, ColorRed},
		{"eight days", expiryIn(8), StatusUpcoming, ColorOrange},
		{"thirty days", expiryIn(30), StatusUpcoming, ColorOrange},
		{"forty five days", expiryIn(45), StatusUpcoming, ColorYellow},
		{"sixty one days", expiryIn(61), StatusValid, ColorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DashboardStatus(tt.expiry, today)
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.color, result.Color)
		})
	}
}

func TestLaddersDisagreeAtThirtyDays(t *testing.T) {
	expiry := expiryIn(30)

	assert.Equal(t, StatusExpiresSoon, DocumentStatus(expiry, today).Status)
	assert.Equal(t, StatusUpcoming, DashboardStatus(expiry, today).Status)
	assert.Equal(t, 30, *DocumentStatus(expiry, today).DaysLeft)
}

func TestAlerts(t *testing.T) {
	gas := models.DocumentTypeGasSafety
	docs := []models.Document{
		{ID: "far", PropertyID: "p1", Extraction: models.ExtractionReady, ExpiryDate: expiryIn(200)},
		{ID: "soon", PropertyID: "p1", Extraction: models.ExtractionReady, ExpiryDate: expiryIn(20), DocumentType: &gas},
		{ID: "expired", PropertyID: "p2", Extraction: models.ExtractionReady, ExpiryDate: expiryIn(-3)},
		{ID: "pending", PropertyID: "p2", Extraction: models.ExtractionPending},
		{ID: "nodate", PropertyID: "p2", Extraction: models.ExtractionReady},
	}
	addresses := map[string]string{"p1": "1 High Street", "p2": "2 Low Road"}

	alerts := Alerts(docs, addresses, today, DashboardNoticeDays)

	require.Len(t, alerts, 2)
	assert.Equal(t, "expired", alerts[0].DocumentID)
	assert.Equal(t, StatusExpired, alerts[0].Result.Status)
	assert.Equal(t, "2 Low Road", alerts[0].PropertyAddress)
	assert.Equal(t, "soon", alerts[1].DocumentID)
	require.NotNil(t, alerts[1].DocumentType)
	assert.Equal(t, string(gas), *alerts[1].DocumentType)
}

func TestAlerts_Empty(t *testing.T) {
	alerts := Alerts(nil, nil, today, DashboardNoticeDays)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
