package actions

import (
	"context"
	"testing"

	"evercraft/internal/common/config"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentLedger struct {
	payments   []*models.Payment
	nonprofits []string
	err        error
}

func (f *fakePaymentLedger) RecordPayment(_ context.Context, p *models.Payment, nonprofitID string) error {
	if f.err != nil {
		return f.err
	}
	p.ID = "pay-1"
	f.payments = append(f.payments, p)
	f.nonprofits = append(f.nonprofits, nonprofitID)
	return nil
}

func newPaymentActions(ledger *fakePaymentLedger) *PaymentActions {
	cfg := config.PayoutConfig{PlatformFeePercent: 8.0, DonationPercent: 2.0}
	return NewPaymentActions(ledger, cfg, logger.NewNoOpLogger())
}

func TestRecordPayment_SplitsGross(t *testing.T) {
	ledger := &fakePaymentLedger{}
	actions := newPaymentActions(ledger)

	payment, appErr := actions.Record(context.Background(), adminIdent, RecordPaymentInput{
		OrderID:     "order-1",
		ShopID:      "shop-9",
		BuyerID:     "user-1",
		GrossCents:  10000,
		NonprofitID: "np-1",
	})

	require.Nil(t, appErr)
	assert.Equal(t, int64(800), payment.PlatformFeeCents)
	assert.Equal(t, int64(200), payment.DonationCents)
	assert.Equal(t, int64(9000), payment.NetCents)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	require.Len(t, ledger.payments, 1)
	assert.Equal(t, []string{"np-1"}, ledger.nonprofits)
}

func TestRecordPayment_NoNonprofitKeepsDonationWithSeller(t *testing.T) {
	ledger := &fakePaymentLedger{}
	actions := newPaymentActions(ledger)

	payment, appErr := actions.Record(context.Background(), adminIdent, RecordPaymentInput{
		OrderID:    "order-2",
		ShopID:     "shop-9",
		BuyerID:    "user-1",
		GrossCents: 10000,
	})

	require.Nil(t, appErr)
	assert.Zero(t, payment.DonationCents)
	assert.Equal(t, int64(9200), payment.NetCents)
}

func TestRecordPayment_RequiresAdmin(t *testing.T) {
	actions := newPaymentActions(&fakePaymentLedger{})

	_, appErr := actions.Record(context.Background(), sellerIdent, RecordPaymentInput{
		OrderID:    "order-1",
		ShopID:     "shop-9",
		GrossCents: 10000,
	})

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
}

func TestRecordPayment_Validation(t *testing.T) {
	actions := newPaymentActions(&fakePaymentLedger{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input RecordPaymentInput
	}{
		{"missing order", RecordPaymentInput{ShopID: "shop-9", GrossCents: 100}},
		{"missing shop", RecordPaymentInput{OrderID: "order-1", GrossCents: 100}},
		{"zero gross", RecordPaymentInput{OrderID: "order-1", ShopID: "shop-9"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, appErr := actions.Record(ctx, adminIdent, tc.input)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		})
	}
}
