package analytics

import (
	"sort"
	"time"
)

// Pure in-memory reducers over query results. Each is deterministic and
// side-effect free; the service methods wrap them with authorization and
// queries.

// GrowthPercent computes month-over-month growth as a percentage. A zero
// previous value yields 0, never infinity.
func GrowthPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// topShops sorts shop revenue rows descending and takes the first limit.
func topShops(rows []ShopRevenue, limit int) []ShopRevenue {
	out := make([]ShopRevenue, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RevenueCents > out[j].RevenueCents
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// topProducts sorts product sales rows descending by revenue and takes the
// first limit.
func topProducts(rows []ProductSales, limit int) []ProductSales {
	out := make([]ProductSales, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RevenueCents > out[j].RevenueCents
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// cohortRetention groups members by signup month and computes the share with
// at least one paid order. Cohorts come back oldest-first.
func cohortRetention(members []CohortMember) []CohortRetention {
	byMonth := make(map[time.Time]*CohortRetention)
	for _, m := range members {
		month := monthStart(m.SignupMonth)
		cohort, ok := byMonth[month]
		if !ok {
			cohort = &CohortRetention{Month: month}
			byMonth[month] = cohort
		}
		cohort.TotalUsers++
		if m.PaidOrders > 0 {
			cohort.ActiveUsers++
		}
	}

	out := make([]CohortRetention, 0, len(byMonth))
	for _, cohort := range byMonth {
		if cohort.TotalUsers > 0 {
			cohort.RetentionRate = float64(cohort.ActiveUsers) / float64(cohort.TotalUsers) * 100
		}
		out = append(out, *cohort)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out
}
