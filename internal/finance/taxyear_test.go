package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacson1/UK-property-management/internal/models"
)

func TestTaxYear_Bounds(t *testing.T) {
	ty := TaxYear{StartYear: 2024}

	assert.Equal(t, "2024/25", ty.Label())
	assert.Equal(t, "2024-04-06", ty.Start().String())
	assert.Equal(t, "2025-04-05", ty.End().String())

	assert.True(t, ty.Contains(models.MustParseDate("2024-04-06")))
	assert.True(t, ty.Contains(models.MustParseDate("2025-04-05")))
	assert.False(t, ty.Contains(models.MustParseDate("2024-04-05")))
	assert.False(t, ty.Contains(models.MustParseDate("2025-04-06")))
}

func TestTaxYear_LabelCenturyRollover(t *testing.T) {
	assert.Equal(t, "2099/00", TaxYear{StartYear: 2099}.Label())
}

func TestCurrentTaxYear(t *testing.T) {
	tests := []struct {
		today string
		label string
	}{
		{"2026-04-05", "2025/26"},
		{"2026-04-06", "2026/27"},
		{"2026-01-01", "2025/26"},
		{"2026-10-15", "2026/27"},
	}

	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			assert.Equal(t, tt.label, CurrentTaxYear(models.MustParseDate(tt.today)).Label())
		})
	}
}

func TestRecentTaxYears(t *testing.T) {
	years := RecentTaxYears(models.NewDate(2026, 10, 15), 3)

	require.Len(t, years, 3)
	assert.Equal(t, "2026/27", years[0].Label())
	assert.Equal(t, "2025/26", years[1].Label())
	assert.Equal(t, "2024/25", years[2].Label())
}

func TestParseTaxYear(t *testing.T) {
	ty, err := ParseTaxYear("2024/25")
	require.NoError(t, err)
	assert.Equal(t, 2024, ty.StartYear)

	ty, err = ParseTaxYear(" 2023/2024 ")
	require.NoError(t, err)
	assert.Equal(t, 2023, ty.StartYear)

	ty, err = ParseTaxYear("2099/00")
	require.NoError(t, err)
	assert.Equal(t, 2099, ty.StartYear)

	for _, bad := range []string{"", "2024", "2024/26", "2024/2026", "24/25", "abcd/ef", "2024/5"} {
		_, err := ParseTaxYear(bad)
		assert.ErrorIs(t, err, ErrInvalidTaxYear, "label %q", bad)
	}
}
