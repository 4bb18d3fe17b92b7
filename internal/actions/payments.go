package actions

import (
	"context"
	"strings"

	"evercraft/internal/common/auth"
	"evercraft/internal/common/config"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"
	"evercraft/pkg/money"
)

type PaymentLedger interface {
	RecordPayment(ctx context.Context, payment *models.Payment, nonprofitID string) error
}

// PaymentActions records settled checkout payments into the ledger. The
// payment gateway webhook calls it through a service account with the admin
// role; analytics and payouts only ever read what it writes.
type PaymentActions struct {
	ledger PaymentLedger
	cfg    config.PayoutConfig
	logger logger.Logger
}

func NewPaymentActions(ledger PaymentLedger, cfg config.PayoutConfig, log logger.Logger) *PaymentActions {
	return &PaymentActions{
		ledger: ledger,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "payments"}),
	}
}

type RecordPaymentInput struct {
	OrderID     string `json:"orderId"`
	ShopID      string `json:"shopId"`
	BuyerID     string `json:"buyerId"`
	GrossCents  int64  `json:"grossCents"`
	NonprofitID string `json:"nonprofitId,omitempty"`
}

func (in RecordPaymentInput) validate() *apperrors.Error {
	switch {
	case strings.TrimSpace(in.OrderID) == "":
		return apperrors.NewValidationError("order id is required")
	case strings.TrimSpace(in.ShopID) == "":
		return apperrors.NewValidationError("shop id is required")
	case in.GrossCents <= 0:
		return apperrors.NewValidationError("gross amount must be positive")
	}
	return nil
}

// Record splits the gross amount into platform fee, donation, and seller
// net, then writes the payment, the donation row, and the balance credit in
// one transaction. Without a nonprofit the donation share stays with the
// seller.
func (a *PaymentActions) Record(ctx context.Context, identity auth.Identity, input RecordPaymentInput) (payment *models.Payment, appErr *apperrors.Error) {
	done := instrument("payment_record")
	defer func() { done(appErr) }()

	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if appErr := input.validate(); appErr != nil {
		return nil, appErr
	}

	donationPercent := a.cfg.DonationPercent
	if input.NonprofitID == "" {
		donationPercent = 0
	}
	split := money.SplitGross(input.GrossCents, a.cfg.PlatformFeePercent, donationPercent)

	payment = &models.Payment{
		OrderID:          input.OrderID,
		ShopID:           input.ShopID,
		BuyerID:          input.BuyerID,
		GrossCents:       split.GrossCents,
		PlatformFeeCents: split.FeeCents,
		DonationCents:    split.DonationCents,
		NetCents:         split.NetCents,
		Status:           models.PaymentStatusPaid,
	}
	if err := a.ledger.RecordPayment(ctx, payment, input.NonprofitID); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	a.logger.Info("payment recorded", map[string]interface{}{
		"orderId":  payment.OrderID,
		"shopId":   payment.ShopID,
		"gross":    payment.GrossCents,
		"fee":      payment.PlatformFeeCents,
		"donation": payment.DonationCents,
	})
	return payment, nil
}
