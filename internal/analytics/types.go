package analytics

import "time"

// Row types returned by the persistence layer. Analytics never mutates the
// ledger; every method here is a read-only reducer over these rows.

// MonthlyRevenue is one month's revenue total, oldest-first when in a slice.
type MonthlyRevenue struct {
	Month        time.Time `json:"month"` // first day of the month, UTC
	RevenueCents int64     `json:"revenueCents"`
}

// LedgerTotals are platform-wide sums over a period.
type LedgerTotals struct {
	GrossCents    int64 `json:"grossCents"`
	FeeCents      int64 `json:"feeCents"`
	DonationCents int64 `json:"donationCents"`
	NetCents      int64 `json:"netCents"`
	OrderCount    int   `json:"orderCount"`
}

// ShopRevenue is a shop's revenue over the queried period, grouped by the
// database.
type ShopRevenue struct {
	ShopID       string `json:"shopId"`
	ShopName     string `json:"shopName"`
	RevenueCents int64  `json:"revenueCents"`
	OrderCount   int    `json:"orderCount"`
}

// ProductSales is a product's sales over the queried period.
type ProductSales struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	UnitsSold    int    `json:"unitsSold"`
	RevenueCents int64  `json:"revenueCents"`
}

// CohortMember is one user row for retention analysis: the month they signed
// up and how many paid orders they have placed since.
type CohortMember struct {
	UserID      string    `json:"userId"`
	SignupMonth time.Time `json:"signupMonth"`
	PaidOrders  int       `json:"paidOrders"`
}

// NonprofitDonation is the donation total for one nonprofit.
type NonprofitDonation struct {
	NonprofitID   string `json:"nonprofitId"`
	NonprofitName string `json:"nonprofitName"`
	AmountCents   int64  `json:"amountCents"`
}

// --- Computed results returned to callers ---

// Overview is the admin dashboard headline block.
type Overview struct {
	TotalRevenueCents    int64   `json:"totalRevenueCents"`
	TotalFeesCents       int64   `json:"totalFeesCents"`
	TotalDonationsCents  int64   `json:"totalDonationsCents"`
	TotalOrders          int     `json:"totalOrders"`
	RevenueGrowthPercent float64 `json:"revenueGrowthPercent"`
	OrdersGrowthPercent  float64 `json:"ordersGrowthPercent"`
	UsersThisMonth       int     `json:"usersThisMonth"`
	UsersLastMonth       int     `json:"usersLastMonth"`
	UserGrowthPercent    float64 `json:"userGrowthPercent"`
}

// ForecastPoint is one predicted month with its fixed confidence envelope.
type ForecastPoint struct {
	Month           time.Time `json:"month"`
	PredictedCents  int64     `json:"predictedCents"`
	LowerBoundCents int64     `json:"lowerBoundCents"`
	UpperBoundCents int64     `json:"upperBoundCents"`
}

// Forecast is the revenue projection over the requested horizon.
type Forecast struct {
	History []MonthlyRevenue `json:"history"`
	Points  []ForecastPoint  `json:"points"`
}

// CohortRetention is one signup-month cohort's retention figures.
type CohortRetention struct {
	Month         time.Time `json:"month"`
	TotalUsers    int       `json:"totalUsers"`
	ActiveUsers   int       `json:"activeUsers"`
	RetentionRate float64   `json:"retentionRate"` // percent
}

// SellerDashboard is the per-seller financial summary.
type SellerDashboard struct {
	RevenueCents        int64            `json:"revenueCents"`
	FeesCents           int64            `json:"feesCents"`
	DonationsCents      int64            `json:"donationsCents"`
	NetCents            int64            `json:"netCents"`
	OrderCount          int              `json:"orderCount"`
	PendingBalanceCents int64            `json:"pendingBalanceCents"`
	MonthlyRevenue      []MonthlyRevenue `json:"monthlyRevenue"`
	TopProducts         []ProductSales   `json:"topProducts"`
}
