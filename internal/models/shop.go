package models

import "time"

type Shop struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Tier        SellerTier `json:"tier"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ShopEcoProfile is the shop-level sustainability questionnaire: ten basic
// practice toggles plus seven optional quantitative/detail fields. Optional
// fields use pointers so presence is explicit, decided once at the boundary.
type ShopEcoProfile struct {
	ShopID string `json:"shopId"`

	// Basic practice toggles
	RecycledPackaging     bool `json:"recycledPackaging"`
	PlasticFreePackaging  bool `json:"plasticFreePackaging"`
	LocalSourcing         bool `json:"localSourcing"`
	OrganicMaterials      bool `json:"organicMaterials"`
	RenewableEnergy       bool `json:"renewableEnergy"`
	CarbonNeutralShipping bool `json:"carbonNeutralShipping"`
	FairTradeCertified    bool `json:"fairTradeCertified"`
	ZeroWasteProduction   bool `json:"zeroWasteProduction"`
	RepairService         bool `json:"repairService"`
	TakeBackProgram       bool `json:"takeBackProgram"`

	// Optional quantitative/detail fields
	AnnualCarbonAuditKg   *float64 `json:"annualCarbonAuditKg,omitempty"`
	RenewableEnergyShare  *float64 `json:"renewableEnergyShare,omitempty"`
	RecycledMaterialShare *float64 `json:"recycledMaterialShare,omitempty"`
	WaterUsageLiters      *float64 `json:"waterUsageLiters,omitempty"`
	Certifications        *string  `json:"certifications,omitempty"`
	SupplyChainNotes      *string  `json:"supplyChainNotes,omitempty"`
	OffsetProgram         *string  `json:"offsetProgram,omitempty"`

	CompletenessPercent int       `json:"completenessPercent"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
