package models

import "time"

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

type Product struct {
	ID          string        `json:"id"`
	ShopID      string        `json:"shopId"`
	CategoryID  string        `json:"categoryId"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	PriceCents  int64         `json:"priceCents"`
	Stock       int           `json:"stock"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductEcoProfile groups per-product sustainability attributes into four
// areas: materials, packaging, carbon/origin, end-of-life. Boolean fields are
// the required/basic tier; pointer fields are the optional detail tier.
type ProductEcoProfile struct {
	ProductID string `json:"productId"`

	// Materials
	OrganicMaterial  bool     `json:"organicMaterial"`
	RecycledMaterial bool     `json:"recycledMaterial"`
	MaterialShare    *float64 `json:"materialShare,omitempty"` // percent recycled/organic
	MaterialOrigin   *string  `json:"materialOrigin,omitempty"`

	// Packaging
	PlasticFree       bool    `json:"plasticFree"`
	RecyclablePackage bool    `json:"recyclablePackage"`
	PackagingNotes    *string `json:"packagingNotes,omitempty"`

	// Carbon / origin
	LocalProduction   bool     `json:"localProduction"`
	CarbonFootprintKg *float64 `json:"carbonFootprintKg,omitempty"`
	ProductionCountry *string  `json:"productionCountry,omitempty"`

	// End of life
	Recyclable    bool    `json:"recyclable"`
	Compostable   bool    `json:"compostable"`
	DisposalNotes *string `json:"disposalNotes,omitempty"`

	CompletenessPercent int       `json:"completenessPercent"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
