package payouts

import (
	"context"
	"errors"
	"testing"
	"time"

	"evercraft/internal/common/auth"
	"evercraft/internal/common/config"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"
	"evercraft/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	balances   []models.SellerBalance
	payouts    []models.SellerPayout
	failShops  map[string]error
	created    []string
	completed  []string
	listErr    error
	balanceErr error
}

func (f *fakeLedger) ShopsWithPendingBalance(_ context.Context, _ int64) ([]models.SellerBalance, error) {
	return f.balances, f.balanceErr
}

func (f *fakeLedger) CreatePayout(_ context.Context, shopID string, periodStart, periodEnd time.Time) (*models.SellerPayout, error) {
	if err, ok := f.failShops[shopID]; ok {
		return nil, err
	}
	f.created = append(f.created, shopID)
	var amount int64
	for _, b := range f.balances {
		if b.ShopID == shopID {
			amount = b.PendingCents
		}
	}
	return &models.SellerPayout{
		ID:          "payout-" + shopID,
		ShopID:      shopID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		AmountCents: amount,
		Status:      models.PayoutStatusScheduled,
	}, nil
}

func (f *fakeLedger) ListPayouts(_ context.Context, _ string, _, _ int) ([]models.SellerPayout, error) {
	return f.payouts, f.listErr
}

func (f *fakeLedger) MarkPayoutCompleted(_ context.Context, payoutID string) error {
	f.completed = append(f.completed, payoutID)
	return nil
}

type fakeShopReader struct{}

func (fakeShopReader) GetByID(_ context.Context, id string) (*models.Shop, error) {
	return &models.Shop{ID: id, OwnerID: "owner-" + id}, nil
}

type fakeUserReader struct{}

func (fakeUserReader) GetByID(_ context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, Email: id + "@example.com"}, nil
}

type recordingNotifier struct {
	notified []string
}

func (r *recordingNotifier) PayoutScheduled(_ context.Context, _ *models.User, payout *models.SellerPayout) {
	r.notified = append(r.notified, payout.ShopID)
}

func testPayoutConfig() config.PayoutConfig {
	return config.PayoutConfig{
		PlatformFeePercent: 8.0,
		DonationPercent:    2.0,
		MinPayoutCents:     1000,
	}
}

func newTestService(ledger *fakeLedger, notifier *recordingNotifier) *Service {
	return NewService(ledger, fakeShopReader{}, fakeUserReader{}, notifier,
		testPayoutConfig(), logger.NewNoOpLogger())
}

var (
	admin  = auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}
	seller = auth.Identity{UserID: "seller-1", Role: auth.RoleSeller, ShopID: "shop-1"}
)

func TestSplitOrder(t *testing.T) {
	svc := newTestService(&fakeLedger{}, nil)

	split := svc.SplitOrder(10000)

	assert.Equal(t, int64(800), split.FeeCents)
	assert.Equal(t, int64(200), split.DonationCents)
	assert.Equal(t, int64(9000), split.NetCents)
	assert.Equal(t, int64(10000), split.FeeCents+split.DonationCents+split.NetCents)
}

func TestScheduleAll(t *testing.T) {
	ledger := &fakeLedger{
		balances: []models.SellerBalance{
			{ShopID: "shop-1", PendingCents: 45000},
			{ShopID: "shop-2", PendingCents: 12000},
		},
	}
	notifier := &recordingNotifier{}
	svc := newTestService(ledger, notifier)

	start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	scheduled, appErr := svc.ScheduleAll(context.Background(), admin, start, end)

	require.Nil(t, appErr)
	require.Len(t, scheduled, 2)
	assert.Equal(t, int64(45000), scheduled[0].AmountCents)
	assert.Equal(t, []string{"shop-1", "shop-2"}, notifier.notified)
}

func TestScheduleAll_SkipsFailedShop(t *testing.T) {
	ledger := &fakeLedger{
		balances: []models.SellerBalance{
			{ShopID: "shop-1", PendingCents: 45000},
			{ShopID: "shop-2", PendingCents: 12000},
		},
		failShops: map[string]error{"shop-1": errors.New("deadlock")},
	}
	svc := newTestService(ledger, &recordingNotifier{})

	scheduled, appErr := svc.ScheduleAll(context.Background(), admin,
		time.Now().AddDate(0, -1, 0), time.Now())

	require.Nil(t, appErr)
	require.Len(t, scheduled, 1)
	assert.Equal(t, "shop-2", scheduled[0].ShopID)
}

func TestScheduleAll_RequiresAdmin(t *testing.T) {
	svc := newTestService(&fakeLedger{}, nil)

	_, appErr := svc.ScheduleAll(context.Background(), seller,
		time.Now().AddDate(0, -1, 0), time.Now())

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
}

func TestScheduleAll_ReversedPeriod(t *testing.T) {
	svc := newTestService(&fakeLedger{}, nil)
	now := time.Now()

	_, appErr := svc.ScheduleAll(context.Background(), admin, now, now.AddDate(0, -1, 0))

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestScheduleForShop_EmptyBalance(t *testing.T) {
	ledger := &fakeLedger{
		failShops: map[string]error{"shop-1": store.ErrNotFound},
	}
	svc := newTestService(ledger, nil)

	_, appErr := svc.ScheduleForShop(context.Background(), admin, "shop-1",
		time.Now().AddDate(0, -1, 0), time.Now())

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestHistory_Scoping(t *testing.T) {
	ledger := &fakeLedger{
		payouts: []models.SellerPayout{{ID: "p1", ShopID: "shop-1"}},
	}
	svc := newTestService(ledger, nil)
	ctx := context.Background()

	payouts, appErr := svc.History(ctx, seller, "shop-1", 20, 0)
	require.Nil(t, appErr)
	assert.Len(t, payouts, 1)

	_, appErr = svc.History(ctx, seller, "shop-2", 20, 0)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
}

func TestComplete(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newTestService(ledger, nil)

	appErr := svc.Complete(context.Background(), admin, "payout-1")

	require.Nil(t, appErr)
	assert.Equal(t, []string{"payout-1"}, ledger.completed)
}
