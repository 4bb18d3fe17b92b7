package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitGross(t *testing.T) {
	tests := []struct {
		name            string
		gross           int64
		feePercent      float64
		donationPercent float64
		wantFee         int64
		wantDonation    int64
		wantNet         int64
	}{
		{
			name:            "even split",
			gross:           10000, // $100.00
			feePercent:      8,
			donationPercent: 2,
			wantFee:         800,
			wantDonation:    200,
			wantNet:         9000,
		},
		{
			name:            "rounding remainder goes to net",
			gross:           999,
			feePercent:      8,
			donationPercent: 2,
			wantFee:         80, // 79.92 rounds up
			wantDonation:    20, // 19.98 rounds up
			wantNet:         899,
		},
		{
			name:            "zero gross",
			gross:           0,
			feePercent:      8,
			donationPercent: 2,
			wantFee:         0,
			wantDonation:    0,
			wantNet:         0,
		},
		{
			name:            "one cent",
			gross:           1,
			feePercent:      8,
			donationPercent: 2,
			wantFee:         0,
			wantDonation:    0,
			wantNet:         1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := SplitGross(tt.gross, tt.feePercent, tt.donationPercent)

			assert.Equal(t, tt.wantFee, split.FeeCents)
			assert.Equal(t, tt.wantDonation, split.DonationCents)
			assert.Equal(t, tt.wantNet, split.NetCents)
		})
	}
}

// The three parts must always reassemble the gross exactly, for any inputs.
func TestSplitGross_SumsToGross(t *testing.T) {
	for gross := int64(0); gross < 5000; gross += 37 {
		split := SplitGross(gross, 8.5, 2.5)
		assert.Equal(t, gross, split.FeeCents+split.DonationCents+split.NetCents,
			"gross %d did not reassemble", gross)
	}
}
