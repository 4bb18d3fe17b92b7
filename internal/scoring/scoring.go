// Package scoring evaluates seller applications. The result is a pure,
// deterministic function of the questionnaire answers and the business
// description; callers persist it.
package scoring

import (
	"strings"

	"evercraft/internal/common/config"
	"evercraft/internal/ecoprofile"
	"evercraft/internal/models"
)

// Result is the derived application assessment.
type Result struct {
	Completeness         int               `json:"completeness"`
	Tier                 models.SellerTier `json:"tier"`
	AutoApprovalEligible bool              `json:"autoApprovalEligible"`
}

type Scorer struct {
	cfg config.ScoringConfig
}

func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score maps a shop eco-profile answer set plus the free-text business
// description to completeness, tier, and auto-approval eligibility.
//
// Eligibility requires completeness at or above the configured threshold
// (default 90) and both gates passing: a description of at least the
// configured minimum length, and at least one basic sustainability practice
// selected (all toggles off is the "none of the above" answer).
func (s *Scorer) Score(profile models.ShopEcoProfile, businessDescription string) Result {
	completeness := ecoprofile.ShopCompleteness(profile)

	eligible := completeness >= s.cfg.AutoApprovalThreshold &&
		len(strings.TrimSpace(businessDescription)) >= s.cfg.MinDescriptionLength &&
		ecoprofile.BasicPracticeCount(profile) > 0

	return Result{
		Completeness:         completeness,
		Tier:                 s.classifyTier(completeness),
		AutoApprovalEligible: eligible,
	}
}

func (s *Scorer) classifyTier(completeness int) models.SellerTier {
	switch {
	case completeness >= s.cfg.LeaderTierThreshold:
		return models.TierLeader
	case completeness >= s.cfg.EstablishedThreshold:
		return models.TierEstablished
	default:
		return models.TierStarter
	}
}
