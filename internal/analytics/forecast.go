package analytics

import (
	"math"
	"time"
)

// linearRegression fits y = intercept + slope*x by ordinary least squares
// over x = 0..n-1. A single point yields a flat line; an empty series yields
// zeros.
func linearRegression(values []int64) (slope, intercept float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return 0, float64(values[0])
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		y := float64(v)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// forecastPoints extrapolates the fitted line monthsAhead past the history.
// The bounds are a fixed percentage envelope around the prediction, not a
// statistically derived interval.
func forecastPoints(history []MonthlyRevenue, monthsAhead, bandPercent int) []ForecastPoint {
	if monthsAhead <= 0 || len(history) == 0 {
		return nil
	}

	values := make([]int64, len(history))
	for i, m := range history {
		values[i] = m.RevenueCents
	}
	slope, intercept := linearRegression(values)

	lastMonth := history[len(history)-1].Month
	band := float64(bandPercent) / 100

	points := make([]ForecastPoint, 0, monthsAhead)
	for k := 1; k <= monthsAhead; k++ {
		x := float64(len(values) - 1 + k)
		predicted := intercept + slope*x
		if predicted < 0 {
			predicted = 0
		}

		points = append(points, ForecastPoint{
			Month:           lastMonth.AddDate(0, k, 0),
			PredictedCents:  int64(math.Round(predicted)),
			LowerBoundCents: int64(math.Round(predicted * (1 - band))),
			UpperBoundCents: int64(math.Round(predicted * (1 + band))),
		})
	}
	return points
}

// monthStart truncates a time to the first instant of its UTC month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
