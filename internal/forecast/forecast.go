// Package forecast projects future monthly emission totals from
// historical data using an ordinary least-squares linear fit.
package forecast

import "time"

// MinHistoryPoints is the minimum history length for a usable fit.
// Below this the regression is ill-conditioned and forecasting is
// skipped entirely rather than attempted.
const MinHistoryPoints = 3

// MonthlyTotal is one month's aggregated emission mass.
type MonthlyTotal struct {
	Year        int        `json:"year"`
	Month       time.Month `json:"month"`
	TotalKgCO2e float64    `json:"total_kg_co2e"`
}

// Point is one entry of a projection result: either carried-over history
// or a forecast period.
type Point struct {
	Year        int        `json:"year"`
	Month       time.Month `json:"month"`
	TotalKgCO2e float64    `json:"total_kg_co2e"`
	Forecast    bool       `json:"forecast"`
}

// Fit computes the OLS slope and intercept over the history, with the
// month index (0, 1, 2, ...) as x and the monthly total as y. ok is
// false when the history is too short to fit.
func Fit(history []MonthlyTotal) (slope, intercept float64, ok bool) {
	n := len(history)
	if n < MinHistoryPoints {
		return 0, 0, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, m := range history {
		x := float64(i)
		sumX += x
		sumY += m.TotalKgCO2e
		sumXY += x * m.TotalKgCO2e
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, false
	}

	slope = (fn*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / fn
	return slope, intercept, true
}

// Project returns the history followed by `periods` forecast points.
//
// With fewer than MinHistoryPoints of history, the history is returned
// unchanged and no forecast is attempted; callers surface this as "no
// data available", not as an error. Forecast values are clamped at zero
// since emissions cannot be negative. Period labels continue from the
// last historical month, wrapping December into January of the next
// year.
func Project(history []MonthlyTotal, periods int) []Point {
	out := make([]Point, 0, len(history)+periods)
	for _, m := range history {
		out = append(out, Point{Year: m.Year, Month: m.Month, TotalKgCO2e: m.TotalKgCO2e})
	}

	slope, intercept, ok := Fit(history)
	if !ok || periods <= 0 {
		return out
	}

	year := history[len(history)-1].Year
	month := history[len(history)-1].Month

	for i := 1; i <= periods; i++ {
		x := float64(len(history) + i - 1)
		value := slope*x + intercept
		if value < 0 {
			value = 0
		}

		month++
		if month > time.December {
			month = time.January
			year++
		}

		out = append(out, Point{Year: year, Month: month, TotalKgCO2e: value, Forecast: true})
	}
	return out
}
