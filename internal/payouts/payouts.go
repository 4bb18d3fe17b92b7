// Package payouts schedules seller payouts from accumulated balances and
// owns the checkout fee split.
package payouts

import (
	"context"
	"time"

	"evercraft/internal/common/auth"
	"evercraft/internal/common/config"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"
	"evercraft/internal/store"
	"evercraft/pkg/money"
)

// Ledger is the slice of the ledger store the payout service needs.
type Ledger interface {
	ShopsWithPendingBalance(ctx context.Context, minCents int64) ([]models.SellerBalance, error)
	CreatePayout(ctx context.Context, shopID string, periodStart, periodEnd time.Time) (*models.SellerPayout, error)
	ListPayouts(ctx context.Context, shopID string, limit, offset int) ([]models.SellerPayout, error)
	MarkPayoutCompleted(ctx context.Context, payoutID string) error
}

// ShopReader resolves shop owners for notifications.
type ShopReader interface {
	GetByID(ctx context.Context, id string) (*models.Shop, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type PayoutNotifier interface {
	PayoutScheduled(ctx context.Context, owner *models.User, payout *models.SellerPayout)
}

type Service struct {
	ledger   Ledger
	shops    ShopReader
	users    UserReader
	notifier PayoutNotifier
	cfg      config.PayoutConfig
	logger   logger.Logger
}

func NewService(ledger Ledger, shops ShopReader, users UserReader, notifier PayoutNotifier, cfg config.PayoutConfig, log logger.Logger) *Service {
	return &Service{
		ledger:   ledger,
		shops:    shops,
		users:    users,
		notifier: notifier,
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "payouts"}),
	}
}

// SplitOrder applies the platform's configured fee and donation percentages
// to a gross amount.
func (s *Service) SplitOrder(grossCents int64) money.Split {
	return money.SplitGross(grossCents, s.cfg.PlatformFeePercent, s.cfg.DonationPercent)
}

// ScheduleAll schedules a payout for every shop whose pending balance meets
// the configured minimum. Individual failures are logged and skipped so one
// bad shop never blocks the run.
func (s *Service) ScheduleAll(ctx context.Context, identity auth.Identity, periodStart, periodEnd time.Time) ([]models.SellerPayout, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if periodEnd.Before(periodStart) {
		return nil, apperrors.NewValidationError("end date before start date")
	}

	balances, err := s.ledger.ShopsWithPendingBalance(ctx, s.cfg.MinPayoutCents)
	if err != nil {
		return nil, apperrors.From(err)
	}

	scheduled := make([]models.SellerPayout, 0, len(balances))
	for _, balance := range balances {
		payout, err := s.ledger.CreatePayout(ctx, balance.ShopID, periodStart, periodEnd)
		if err != nil {
			s.logger.WithError(err).Error("payout scheduling failed", map[string]interface{}{
				"shopId": balance.ShopID,
			})
			continue
		}
		scheduled = append(scheduled, *payout)
		s.notifyOwner(ctx, payout)
	}

	s.logger.Info("payout run complete", map[string]interface{}{
		"eligible":  len(balances),
		"scheduled": len(scheduled),
	})
	return scheduled, nil
}

// ScheduleForShop schedules a single shop's payout regardless of the
// minimum, for manual admin runs.
func (s *Service) ScheduleForShop(ctx context.Context, identity auth.Identity, shopID string, periodStart, periodEnd time.Time) (*models.SellerPayout, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if periodEnd.Before(periodStart) {
		return nil, apperrors.NewValidationError("end date before start date")
	}

	payout, err := s.ledger.CreatePayout(ctx, shopID, periodStart, periodEnd)
	if err != nil {
		return nil, store.AsAppError(err, "balance", shopID)
	}
	s.notifyOwner(ctx, payout)
	return payout, nil
}

// History lists a shop's payouts. Sellers see their own shop only.
func (s *Service) History(ctx context.Context, identity auth.Identity, shopID string, limit, offset int) ([]models.SellerPayout, *apperrors.Error) {
	if !identity.IsAdmin() {
		if !identity.IsSeller() || identity.ShopID != shopID {
			return nil, apperrors.NewUnauthorizedError("seller may only view own payouts")
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	payouts, err := s.ledger.ListPayouts(ctx, shopID, limit, offset)
	if err != nil {
		return nil, apperrors.From(err)
	}
	return payouts, nil
}

// Complete marks a scheduled payout as settled.
func (s *Service) Complete(ctx context.Context, identity auth.Identity, payoutID string) *apperrors.Error {
	if !identity.IsAdmin() {
		return apperrors.NewUnauthorizedError("admin role required")
	}
	if err := s.ledger.MarkPayoutCompleted(ctx, payoutID); err != nil {
		return store.AsAppError(err, "payout", payoutID)
	}
	return nil
}

func (s *Service) notifyOwner(ctx context.Context, payout *models.SellerPayout) {
	if s.notifier == nil {
		return
	}
	shop, err := s.shops.GetByID(ctx, payout.ShopID)
	if err != nil {
		s.logger.WithError(err).Warn("payout notification skipped", map[string]interface{}{
			"shopId": payout.ShopID,
		})
		return
	}
	owner, err := s.users.GetByID(ctx, shop.OwnerID)
	if err != nil {
		s.logger.WithError(err).Warn("payout notification skipped", map[string]interface{}{
			"ownerId": shop.OwnerID,
		})
		return
	}
	s.notifier.PayoutScheduled(ctx, owner, payout)
}
