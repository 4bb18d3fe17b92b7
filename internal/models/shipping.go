package models

import "time"

// ShippingProfile is a seller-defined shipping option attached to products.
type ShippingProfile struct {
	ID            string    `json:"id"`
	ShopID        string    `json:"shopId"`
	Name          string    `json:"name"`
	CarrierName   string    `json:"carrierName,omitempty"`
	BaseRateCents int64     `json:"baseRateCents"`
	PerItemCents  int64     `json:"perItemCents"`
	MinDays       int       `json:"minDays"`
	MaxDays       int       `json:"maxDays"`
	CarbonNeutral bool      `json:"carbonNeutral"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
