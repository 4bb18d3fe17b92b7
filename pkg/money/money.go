// Package money implements the fee-splitting arithmetic for the payment
// ledger. All amounts are integer cents.
package money

import "math"

// Split is the division of one order's gross amount.
type Split struct {
	GrossCents    int64 `json:"grossCents"`
	FeeCents      int64 `json:"feeCents"`
	DonationCents int64 `json:"donationCents"`
	NetCents      int64 `json:"netCents"`
}

// SplitGross divides a gross amount into platform fee, nonprofit donation,
// and seller net. Fee and donation are rounded to the nearest cent; the net
// absorbs the remainder so the three parts always sum to the gross exactly.
func SplitGross(grossCents int64, feePercent, donationPercent float64) Split {
	fee := roundCents(float64(grossCents) * feePercent / 100)
	donation := roundCents(float64(grossCents) * donationPercent / 100)
	return Split{
		GrossCents:    grossCents,
		FeeCents:      fee,
		DonationCents: donation,
		NetCents:      grossCents - fee - donation,
	}
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
