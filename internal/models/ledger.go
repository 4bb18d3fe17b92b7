package models

import "time"

// Financial ledger rows. All monetary amounts are integer cents. Analytics
// reads these; only the checkout and payout workflows write them.

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID               string        `json:"id"`
	OrderID          string        `json:"orderId"`
	ShopID           string        `json:"shopId"`
	BuyerID          string        `json:"buyerId"`
	GrossCents       int64         `json:"grossCents"`
	PlatformFeeCents int64         `json:"platformFeeCents"`
	DonationCents    int64         `json:"donationCents"`
	NetCents         int64         `json:"netCents"`
	Status           PaymentStatus `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
}

type Donation struct {
	ID          string    `json:"id"`
	PaymentID   string    `json:"paymentId"`
	NonprofitID string    `json:"nonprofitId"`
	AmountCents int64     `json:"amountCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PayoutStatus string

const (
	PayoutStatusScheduled PayoutStatus = "SCHEDULED"
	PayoutStatusCompleted PayoutStatus = "COMPLETED"
	PayoutStatusFailed    PayoutStatus = "FAILED"
)

// SellerPayout is a scheduled aggregate transfer of a seller's net earnings
// for a period.
type SellerPayout struct {
	ID          string       `json:"id"`
	ShopID      string       `json:"shopId"`
	PeriodStart time.Time    `json:"periodStart"`
	PeriodEnd   time.Time    `json:"periodEnd"`
	AmountCents int64        `json:"amountCents"`
	Status      PayoutStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// SellerBalance tracks a shop's accumulated net earnings not yet paid out.
type SellerBalance struct {
	ShopID       string    `json:"shopId"`
	PendingCents int64     `json:"pendingCents"`
	PaidCents    int64     `json:"paidCents"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Nonprofit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
