package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"normal growth", 15, 12, 25},
		{"decline", 9, 12, -25},
		{"zero previous guards division", 15, 0, 0},
		{"both zero", 0, 0, 0},
		{"unchanged", 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GrowthPercent(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestTopShops(t *testing.T) {
	rows := []ShopRevenue{
		{ShopID: "C", RevenueCents: 100000},
		{ShopID: "A", RevenueCents: 800000},
		{ShopID: "B", RevenueCents: 600000},
	}

	top := topShops(rows, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].ShopID)
	assert.Equal(t, "B", top[1].ShopID)

	// input slice is untouched
	assert.Equal(t, "C", rows[0].ShopID)
}

func TestTopShops_LimitLargerThanInput(t *testing.T) {
	rows := []ShopRevenue{{ShopID: "A", RevenueCents: 100}}
	assert.Len(t, topShops(rows, 10), 1)
}

func TestTopProducts(t *testing.T) {
	rows := []ProductSales{
		{ProductID: "p1", RevenueCents: 50},
		{ProductID: "p2", RevenueCents: 300},
		{ProductID: "p3", RevenueCents: 120},
	}

	top := topProducts(rows, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "p2", top[0].ProductID)
	assert.Equal(t, "p3", top[1].ProductID)
}

func TestCohortRetention(t *testing.T) {
	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	members := make([]CohortMember, 0, 12)
	// January cohort: 10 signups, 4 with a paid order
	for i := 0; i < 10; i++ {
		m := CohortMember{UserID: "jan", SignupMonth: jan.AddDate(0, 0, i)}
		if i < 4 {
			m.PaidOrders = 1 + i
		}
		members = append(members, m)
	}
	// February cohort: 2 signups, none active
	members = append(members,
		CohortMember{UserID: "feb-1", SignupMonth: feb},
		CohortMember{UserID: "feb-2", SignupMonth: feb.AddDate(0, 0, 10)},
	)

	cohorts := cohortRetention(members)

	require.Len(t, cohorts, 2)
	assert.Equal(t, jan, cohorts[0].Month)
	assert.Equal(t, 10, cohorts[0].TotalUsers)
	assert.Equal(t, 4, cohorts[0].ActiveUsers)
	assert.InDelta(t, 40, cohorts[0].RetentionRate, 1e-9)

	assert.Equal(t, feb, cohorts[1].Month)
	assert.InDelta(t, 0, cohorts[1].RetentionRate, 1e-9)
}

func TestCohortRetention_Empty(t *testing.T) {
	assert.Empty(t, cohortRetention(nil))
}
