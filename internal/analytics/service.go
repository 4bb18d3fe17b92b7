// Package analytics computes the platform and seller KPI blocks: revenue
// totals, growth, forecasts, cohort retention, leaderboards, and donation
// summaries. Every method authorizes the caller, reads, reduces in memory,
// and returns; nothing here writes to the ledger.
package analytics

import (
	"context"
	"time"

	"evercraft/internal/common/auth"
	"evercraft/internal/common/config"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
)

// Store is the read-side persistence interface analytics depends on. The
// concrete implementation lives in internal/store; tests substitute fakes.
type Store interface {
	MonthlyRevenue(ctx context.Context, shopID string, months int) ([]MonthlyRevenue, error)
	PlatformTotals(ctx context.Context, from, to time.Time) (LedgerTotals, error)
	ShopTotals(ctx context.Context, shopID string, from, to time.Time) (LedgerTotals, error)
	ShopRevenues(ctx context.Context, from, to time.Time) ([]ShopRevenue, error)
	ProductSales(ctx context.Context, shopID string, from, to time.Time) ([]ProductSales, error)
	CohortMembers(ctx context.Context, since time.Time) ([]CohortMember, error)
	SignupCounts(ctx context.Context, thisMonth, lastMonth time.Time) (current, previous int, err error)
	DonationTotals(ctx context.Context, from, to time.Time) ([]NonprofitDonation, error)
	PendingBalance(ctx context.Context, shopID string) (int64, error)
}

type Service struct {
	store  Store
	cfg    config.AnalyticsConfig
	logger logger.Logger
	now    func() time.Time // injectable clock for tests
}

func NewService(store Store, cfg config.AnalyticsConfig, log logger.Logger) *Service {
	return &Service{
		store:  store,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "analytics"}),
		now:    time.Now,
	}
}

// PlatformOverview returns the admin dashboard headline numbers. The three
// independent reads fan out concurrently and are joined before reducing.
func (s *Service) PlatformOverview(ctx context.Context, identity auth.Identity) (*Overview, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}

	now := s.now().UTC()
	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var (
		current, previous                 LedgerTotals
		usersThis, usersLast              int
		errCurrent, errPrevious, errUsers error
	)

	done := make(chan struct{}, 3)
	go func() {
		current, errCurrent = s.store.PlatformTotals(ctx, thisMonth, now)
		done <- struct{}{}
	}()
	go func() {
		previous, errPrevious = s.store.PlatformTotals(ctx, lastMonth, thisMonth)
		done <- struct{}{}
	}()
	go func() {
		usersThis, usersLast, errUsers = s.store.SignupCounts(ctx, thisMonth, lastMonth)
		done <- struct{}{}
	}()
	for i := 0; i < 3; i++ {
		<-done
	}

	for _, err := range []error{errCurrent, errPrevious, errUsers} {
		if err != nil {
			s.logger.WithError(err).Error("platform overview query failed", nil)
			return nil, apperrors.From(err)
		}
	}

	return &Overview{
		TotalRevenueCents:    current.GrossCents,
		TotalFeesCents:       current.FeeCents,
		TotalDonationsCents:  current.DonationCents,
		TotalOrders:          current.OrderCount,
		RevenueGrowthPercent: GrowthPercent(float64(current.GrossCents), float64(previous.GrossCents)),
		OrdersGrowthPercent:  GrowthPercent(float64(current.OrderCount), float64(previous.OrderCount)),
		UsersThisMonth:       usersThis,
		UsersLastMonth:       usersLast,
		UserGrowthPercent:    GrowthPercent(float64(usersThis), float64(usersLast)),
	}, nil
}

// RevenueForecast projects platform revenue monthsAhead months forward from
// the configured history window.
func (s *Service) RevenueForecast(ctx context.Context, identity auth.Identity, monthsAhead int) (*Forecast, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if monthsAhead < 1 || monthsAhead > 24 {
		return nil, apperrors.NewValidationError("monthsAhead must be 1-24")
	}

	history, err := s.store.MonthlyRevenue(ctx, "", s.cfg.ForecastWindow)
	if err != nil {
		return nil, apperrors.From(err)
	}

	return &Forecast{
		History: history,
		Points:  forecastPoints(history, monthsAhead, s.cfg.ForecastBandPercent),
	}, nil
}

// Cohorts returns monthly signup cohorts with retention rates over the past
// `months` months.
func (s *Service) Cohorts(ctx context.Context, identity auth.Identity, months int) ([]CohortRetention, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if months < 1 {
		months = 12
	}

	since := monthStart(s.now().UTC()).AddDate(0, -months, 0)
	members, err := s.store.CohortMembers(ctx, since)
	if err != nil {
		return nil, apperrors.From(err)
	}

	return cohortRetention(members), nil
}

// TopShops returns the revenue leaderboard over the period.
func (s *Service) TopShops(ctx context.Context, identity auth.Identity, from, to time.Time, limit int) ([]ShopRevenue, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if to.Before(from) {
		return nil, apperrors.NewValidationError("end date before start date")
	}
	if limit <= 0 {
		limit = s.cfg.LeaderboardLimit
	}

	rows, err := s.store.ShopRevenues(ctx, from, to)
	if err != nil {
		return nil, apperrors.From(err)
	}

	return topShops(rows, limit), nil
}

// TopProducts returns the best-selling products, platform-wide for admins.
func (s *Service) TopProducts(ctx context.Context, identity auth.Identity, from, to time.Time, limit int) ([]ProductSales, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if to.Before(from) {
		return nil, apperrors.NewValidationError("end date before start date")
	}
	if limit <= 0 {
		limit = s.cfg.LeaderboardLimit
	}

	rows, err := s.store.ProductSales(ctx, "", from, to)
	if err != nil {
		return nil, apperrors.From(err)
	}

	return topProducts(rows, limit), nil
}

// DonationSummary returns donation totals grouped by nonprofit.
func (s *Service) DonationSummary(ctx context.Context, identity auth.Identity, from, to time.Time) ([]NonprofitDonation, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if to.Before(from) {
		return nil, apperrors.NewValidationError("end date before start date")
	}

	rows, err := s.store.DonationTotals(ctx, from, to)
	if err != nil {
		return nil, apperrors.From(err)
	}
	return rows, nil
}

// SellerDashboard returns the financial summary for one shop. Sellers may
// only read their own shop; admins may read any.
func (s *Service) SellerDashboard(ctx context.Context, identity auth.Identity, shopID string) (*SellerDashboard, *apperrors.Error) {
	if !identity.IsAdmin() {
		if !identity.IsSeller() || identity.ShopID != shopID {
			return nil, apperrors.NewUnauthorizedError("seller may only view own shop")
		}
	}

	now := s.now().UTC()
	yearAgo := monthStart(now).AddDate(-1, 0, 0)

	var (
		totals  LedgerTotals
		monthly []MonthlyRevenue
		top     []ProductSales
		pending int64

		errTotals, errMonthly, errTop, errPending error
	)

	done := make(chan struct{}, 4)
	go func() {
		totals, errTotals = s.store.ShopTotals(ctx, shopID, yearAgo, now)
		done <- struct{}{}
	}()
	go func() {
		monthly, errMonthly = s.store.MonthlyRevenue(ctx, shopID, 12)
		done <- struct{}{}
	}()
	go func() {
		top, errTop = s.store.ProductSales(ctx, shopID, yearAgo, now)
		done <- struct{}{}
	}()
	go func() {
		pending, errPending = s.store.PendingBalance(ctx, shopID)
		done <- struct{}{}
	}()
	for i := 0; i < 4; i++ {
		<-done
	}

	for _, err := range []error{errTotals, errMonthly, errTop, errPending} {
		if err != nil {
			return nil, apperrors.From(err)
		}
	}

	return &SellerDashboard{
		RevenueCents:        totals.GrossCents,
		FeesCents:           totals.FeeCents,
		DonationsCents:      totals.DonationCents,
		NetCents:            totals.NetCents,
		OrderCount:          totals.OrderCount,
		PendingBalanceCents: pending,
		MonthlyRevenue:      monthly,
		TopProducts:         topProducts(top, s.cfg.LeaderboardLimit),
	}, nil
}
