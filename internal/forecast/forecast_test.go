package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func months(totals ...float64) []MonthlyTotal {
	out := make([]MonthlyTotal, len(totals))
	year, month := 2025, time.January
	for i, v := range totals {
		out[i] = MonthlyTotal{Year: year, Month: month, TotalKgCO2e: v}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return out
}

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		history       []MonthlyTotal
		wantSlope     float64
		wantIntercept float64
		wantOK        bool
	}{
		{
			name:          "perfect upward line",
			history:       months(100, 110, 120, 130),
			wantSlope:     10,
			wantIntercept: 100,
			wantOK:        true,
		},
		{
			name:          "flat series",
			history:       months(50, 50, 50),
			wantSlope:     0,
			wantIntercept: 50,
			wantOK:        true,
		},
		{
			name:    "two points is insufficient",
			history: months(100, 200),
			wantOK:  false,
		},
		{
			name:    "empty history",
			history: nil,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slope, intercept, ok := Fit(tt.history)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantSlope, slope, 1e-9)
				assert.InDelta(t, tt.wantIntercept, intercept, 1e-9)
			}
		})
	}
}

func TestProject(t *testing.T) {
	history := months(100, 110, 120)

	got := Project(history, 2)
	require.Len(t, got, 5)

	// History carried over unchanged.
	for i, m := range history {
		assert.Equal(t, m.TotalKgCO2e, got[i].TotalKgCO2e)
		assert.False(t, got[i].Forecast)
	}

	// Perfect line continues: x=3 -> 130, x=4 -> 140.
	assert.True(t, got[3].Forecast)
	assert.InDelta(t, 130, got[3].TotalKgCO2e, 1e-9)
	assert.InDelta(t, 140, got[4].TotalKgCO2e, 1e-9)

	// Labels continue from the last historical month.
	assert.Equal(t, time.April, got[3].Month)
	assert.Equal(t, time.May, got[4].Month)
	assert.Equal(t, 2025, got[4].Year)
}

// Forecasting with fewer than 3 points must return history only, never a
// regression result.
func TestProjectInsufficientHistory(t *testing.T) {
	history := months(100, 200)
	got := Project(history, 6)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.False(t, p.Forecast)
	}
}

func TestProjectClampsAtZero(t *testing.T) {
	// Steep decline crosses zero within the forecast horizon.
	got := Project(months(300, 200, 100), 3)
	require.Len(t, got, 6)
	assert.InDelta(t, 0, got[3].TotalKgCO2e, 1e-9)
	assert.Zero(t, got[4].TotalKgCO2e)
	assert.Zero(t, got[5].TotalKgCO2e)
}

func TestProjectYearRollover(t *testing.T) {
	history := []MonthlyTotal{
		{Year: 2025, Month: time.October, TotalKgCO2e: 10},
		{Year: 2025, Month: time.November, TotalKgCO2e: 20},
		{Year: 2025, Month: time.December, TotalKgCO2e: 30},
	}

	got := Project(history, 2)
	require.Len(t, got, 5)
	assert.Equal(t, time.January, got[3].Month)
	assert.Equal(t, 2026, got[3].Year)
	assert.Equal(t, time.February, got[4].Month)
	assert.Equal(t, 2026, got[4].Year)
}
