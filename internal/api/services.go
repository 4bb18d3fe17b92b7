package api

import (
	"context"
	"time"

	"evercraft/internal/actions"
	"evercraft/internal/analytics"
	"evercraft/internal/common/auth"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/models"
)

// The service interfaces mirror the concrete action types one-to-one; they
// exist so handler tests can substitute fakes.

type ApplicationActions interface {
	Submit(ctx context.Context, identity auth.Identity, input actions.SubmitApplicationInput) (*models.SellerApplication, *apperrors.Error)
	Review(ctx context.Context, identity auth.Identity, applicationID string, approve bool, note string) (*models.SellerApplication, *apperrors.Error)
	ListPending(ctx context.Context, identity auth.Identity, limit, offset int) ([]models.SellerApplication, *apperrors.Error)
	Get(ctx context.Context, identity auth.Identity, applicationID string) (*models.SellerApplication, *apperrors.Error)
}

type ProductActions interface {
	Create(ctx context.Context, identity auth.Identity, input actions.ProductInput) (*models.Product, *apperrors.Error)
	Update(ctx context.Context, identity auth.Identity, productID string, input actions.ProductInput) (*models.Product, *apperrors.Error)
	Delete(ctx context.Context, identity auth.Identity, productID string) *apperrors.Error
}

type ShippingActions interface {
	Create(ctx context.Context, identity auth.Identity, input actions.ShippingInput) (*models.ShippingProfile, *apperrors.Error)
	Update(ctx context.Context, identity auth.Identity, profileID string, input actions.ShippingInput) (*models.ShippingProfile, *apperrors.Error)
	Delete(ctx context.Context, identity auth.Identity, profileID string) *apperrors.Error
	List(ctx context.Context, identity auth.Identity, shopID string) ([]models.ShippingProfile, *apperrors.Error)
}

type PaymentActions interface {
	Record(ctx context.Context, identity auth.Identity, input actions.RecordPaymentInput) (*models.Payment, *apperrors.Error)
}

type AnalyticsService interface {
	PlatformOverview(ctx context.Context, identity auth.Identity) (*analytics.Overview, *apperrors.Error)
	RevenueForecast(ctx context.Context, identity auth.Identity, monthsAhead int) (*analytics.Forecast, *apperrors.Error)
	Cohorts(ctx context.Context, identity auth.Identity, months int) ([]analytics.CohortRetention, *apperrors.Error)
	TopShops(ctx context.Context, identity auth.Identity, from, to time.Time, limit int) ([]analytics.ShopRevenue, *apperrors.Error)
	TopProducts(ctx context.Context, identity auth.Identity, from, to time.Time, limit int) ([]analytics.ProductSales, *apperrors.Error)
	DonationSummary(ctx context.Context, identity auth.Identity, from, to time.Time) ([]analytics.NonprofitDonation, *apperrors.Error)
	SellerDashboard(ctx context.Context, identity auth.Identity, shopID string) (*analytics.SellerDashboard, *apperrors.Error)
}

type PayoutService interface {
	ScheduleAll(ctx context.Context, identity auth.Identity, periodStart, periodEnd time.Time) ([]models.SellerPayout, *apperrors.Error)
	ScheduleForShop(ctx context.Context, identity auth.Identity, shopID string, periodStart, periodEnd time.Time) (*models.SellerPayout, *apperrors.Error)
	History(ctx context.Context, identity auth.Identity, shopID string, limit, offset int) ([]models.SellerPayout, *apperrors.Error)
	Complete(ctx context.Context, identity auth.Identity, payoutID string) *apperrors.Error
}
