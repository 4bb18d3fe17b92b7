package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearHistory(n int, base, step int64) []MonthlyRevenue {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]MonthlyRevenue, n)
	for i := 0; i < n; i++ {
		out[i] = MonthlyRevenue{
			Month:        start.AddDate(0, i, 0),
			RevenueCents: base + step*int64(i),
		}
	}
	return out
}

func TestLinearRegression_PerfectLine(t *testing.T) {
	// revenue = 1000 + 100*monthIndex
	values := make([]int64, 12)
	for i := range values {
		values[i] = 1000 + 100*int64(i)
	}

	slope, intercept := linearRegression(values)

	assert.InDelta(t, 100, slope, 1e-9)
	assert.InDelta(t, 1000, intercept, 1e-9)
}

func TestLinearRegression_EdgeCases(t *testing.T) {
	slope, intercept := linearRegression(nil)
	assert.Zero(t, slope)
	assert.Zero(t, intercept)

	slope, intercept = linearRegression([]int64{500})
	assert.Zero(t, slope)
	assert.Equal(t, 500.0, intercept)

	// flat series
	slope, intercept = linearRegression([]int64{700, 700, 700})
	assert.InDelta(t, 0, slope, 1e-9)
	assert.InDelta(t, 700, intercept, 1e-9)
}

func TestForecastPoints_LinearSeries(t *testing.T) {
	history := linearHistory(12, 1000, 100)

	points := forecastPoints(history, 3, 15)
	require.Len(t, points, 3)

	// next month continues the line: 1000 + 100*12
	assert.Equal(t, int64(2200), points[0].PredictedCents)
	assert.Equal(t, int64(2300), points[1].PredictedCents)
	assert.Equal(t, int64(2400), points[2].PredictedCents)

	// months advance from the last history month
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), points[0].Month)
}

func TestForecastPoints_FixedBand(t *testing.T) {
	history := linearHistory(12, 1000, 100)

	points := forecastPoints(history, 1, 15)
	require.Len(t, points, 1)

	predicted := float64(points[0].PredictedCents)
	assert.Equal(t, int64(math.Round(predicted*0.85)), points[0].LowerBoundCents)
	assert.Equal(t, int64(math.Round(predicted*1.15)), points[0].UpperBoundCents)
}

func TestForecastPoints_NeverNegative(t *testing.T) {
	// steeply declining revenue would extrapolate below zero
	history := linearHistory(6, 5000, -1500)

	points := forecastPoints(history, 4, 15)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.PredictedCents, int64(0))
		assert.GreaterOrEqual(t, p.LowerBoundCents, int64(0))
	}
}

func TestForecastPoints_EmptyInputs(t *testing.T) {
	assert.Nil(t, forecastPoints(nil, 3, 15))
	assert.Nil(t, forecastPoints(linearHistory(12, 1000, 100), 0, 15))
}
