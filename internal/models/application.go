package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
)

// SellerTier labels a seller's sustainability maturity, derived from the
// eco-profile completeness at application time.
type SellerTier string

const (
	TierStarter     SellerTier = "STARTER"
	TierEstablished SellerTier = "ESTABLISHED"
	TierLeader      SellerTier = "LEADER"
)

// SellerApplication is the intake record for a buyer applying to open a
// shop. The derived fields (completeness, tier, eligibility) are written
// once by the scoring step at creation; status changes only through the
// admin review action. Once a shop exists the row is immutable history.
type SellerApplication struct {
	ID                   string            `json:"id"`
	ApplicantID          string            `json:"applicantId"`
	ShopName             string            `json:"shopName"`
	BusinessDescription  string            `json:"businessDescription"`
	EcoProfile           ShopEcoProfile    `json:"shopEcoProfileData"`
	CompletenessScore    int               `json:"completenessScore"`
	Tier                 SellerTier        `json:"tier"`
	AutoApprovalEligible bool              `json:"autoApprovalEligible"`
	Status               ApplicationStatus `json:"status"`
	ReviewedBy           *string           `json:"reviewedBy,omitempty"`
	ReviewNote           *string           `json:"reviewNote,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}
