// Package ecoprofile computes completeness percentages for product and shop
// eco-profiles. Both calculators are pure and total: absent fields contribute
// zero, the result is always 0-100, and adding a field never lowers it.
package ecoprofile

import (
	"math"

	"evercraft/internal/models"
)

// Shop-level weighting: the ten basic practice toggles share 70 points
// (7 each); the seven optional detail fields share the remaining 30.
// With these weights 8/10 toggles alone yields 56% and 3/7 optional
// fields alone yields 13%, matching the production seed data.
const (
	shopBasicWeight    = 7.0
	shopOptionalWeight = 30.0 / 7.0
)

// ShopCompleteness returns the 0-100 completeness percentage for a shop
// eco-profile.
func ShopCompleteness(p models.ShopEcoProfile) int {
	basics := 0
	for _, on := range shopBasicToggles(p) {
		if on {
			basics++
		}
	}

	optionals := 0
	if p.AnnualCarbonAuditKg != nil {
		optionals++
	}
	if p.RenewableEnergyShare != nil {
		optionals++
	}
	if p.RecycledMaterialShare != nil {
		optionals++
	}
	if p.WaterUsageLiters != nil {
		optionals++
	}
	if p.Certifications != nil && *p.Certifications != "" {
		optionals++
	}
	if p.SupplyChainNotes != nil && *p.SupplyChainNotes != "" {
		optionals++
	}
	if p.OffsetProgram != nil && *p.OffsetProgram != "" {
		optionals++
	}

	score := float64(basics)*shopBasicWeight + float64(optionals)*shopOptionalWeight
	return clampPercent(int(math.Round(score)))
}

// BasicPracticeCount returns how many of the ten basic sustainability
// toggles are set. Zero means the "none of the above" answer, which blocks
// auto-approval.
func BasicPracticeCount(p models.ShopEcoProfile) int {
	n := 0
	for _, on := range shopBasicToggles(p) {
		if on {
			n++
		}
	}
	return n
}

func shopBasicToggles(p models.ShopEcoProfile) [10]bool {
	return [10]bool{
		p.RecycledPackaging,
		p.PlasticFreePackaging,
		p.LocalSourcing,
		p.OrganicMaterials,
		p.RenewableEnergy,
		p.CarbonNeutralShipping,
		p.FairTradeCertified,
		p.ZeroWasteProduction,
		p.RepairService,
		p.TakeBackProgram,
	}
}

// Product-level weighting, by attribute group: materials 40, packaging 25,
// carbon/origin 20, end-of-life 15. Within each group the basic boolean
// fields carry the larger share; detail fields fill the remainder. The
// weights sum to exactly 100.
func ProductCompleteness(p models.ProductEcoProfile) int {
	score := 0

	// Materials (40)
	if p.OrganicMaterial {
		score += 12
	}
	if p.RecycledMaterial {
		score += 12
	}
	if p.MaterialShare != nil {
		score += 8
	}
	if p.MaterialOrigin != nil && *p.MaterialOrigin != "" {
		score += 8
	}

	// Packaging (25)
	if p.PlasticFree {
		score += 9
	}
	if p.RecyclablePackage {
		score += 9
	}
	if p.PackagingNotes != nil && *p.PackagingNotes != "" {
		score += 7
	}

	// Carbon / origin (20)
	if p.LocalProduction {
		score += 8
	}
	if p.CarbonFootprintKg != nil {
		score += 6
	}
	if p.ProductionCountry != nil && *p.ProductionCountry != "" {
		score += 6
	}

	// End of life (15)
	if p.Recyclable {
		score += 5
	}
	if p.Compostable {
		score += 5
	}
	if p.DisposalNotes != nil && *p.DisposalNotes != "" {
		score += 5
	}

	return clampPercent(score)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
