package actions

import (
	"context"
	"encoding/json"
	"strings"

	"evercraft/internal/common/auth"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/common/metrics"
	"evercraft/internal/ecoprofile"
	"evercraft/internal/models"
	"evercraft/internal/scoring"
	"evercraft/internal/store"
)

// SystemReviewer marks decisions made by the auto-approval gate rather
// than a person.
const SystemReviewer = "system"

type ApplicationStore interface {
	Create(ctx context.Context, app *models.SellerApplication) error
	GetByID(ctx context.Context, id string) (*models.SellerApplication, error)
	HasOpen(ctx context.Context, applicantID string) (bool, error)
	ListByStatus(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]models.SellerApplication, error)
	SetStatus(ctx context.Context, id string, status models.ApplicationStatus, reviewerID, note string) error
}

type ShopCreator interface {
	CreateFromApplication(ctx context.Context, app *models.SellerApplication) (*models.Shop, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type DecisionNotifier interface {
	ApplicationDecision(ctx context.Context, applicant *models.User, app *models.SellerApplication)
}

type ApplicationActions struct {
	apps     ApplicationStore
	shops    ShopCreator
	users    UserReader
	scorer   *scoring.Scorer
	notifier DecisionNotifier
	logger   logger.Logger
}

func NewApplicationActions(apps ApplicationStore, shops ShopCreator, users UserReader, scorer *scoring.Scorer, notifier DecisionNotifier, log logger.Logger) *ApplicationActions {
	return &ApplicationActions{
		apps:     apps,
		shops:    shops,
		users:    users,
		scorer:   scorer,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"component": "applications"}),
	}
}

type SubmitApplicationInput struct {
	ShopName            string          `json:"shopName"`
	BusinessDescription string          `json:"businessDescription"`
	EcoProfile          json.RawMessage `json:"ecoProfile"`
}

// Submit scores and persists a buyer's seller application. When the score
// clears the auto-approval gate the shop is opened immediately.
func (a *ApplicationActions) Submit(ctx context.Context, identity auth.Identity, input SubmitApplicationInput) (app *models.SellerApplication, appErr *apperrors.Error) {
	done := instrument("application_submit")
	defer func() { done(appErr) }()

	if identity.Role != auth.RoleBuyer {
		if identity.IsSeller() {
			return nil, apperrors.NewConflictError("shop", identity.ShopID)
		}
		return nil, apperrors.NewUnauthorizedError("only buyers may apply to sell")
	}
	if strings.TrimSpace(input.ShopName) == "" {
		return nil, apperrors.NewValidationError("shop name is required")
	}

	profile, err := ecoprofile.ParseShopProfile(input.EcoProfile)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	open, err := a.apps.HasOpen(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if open {
		return nil, apperrors.NewConflictError("application", identity.UserID)
	}

	result := a.scorer.Score(profile, input.BusinessDescription)
	app = &models.SellerApplication{
		ApplicantID:          identity.UserID,
		ShopName:             strings.TrimSpace(input.ShopName),
		BusinessDescription:  strings.TrimSpace(input.BusinessDescription),
		EcoProfile:           profile,
		CompletenessScore:    result.Completeness,
		Tier:                 result.Tier,
		AutoApprovalEligible: result.AutoApprovalEligible,
		Status:               models.ApplicationStatusPending,
	}
	if err := a.apps.Create(ctx, app); err != nil {
		return nil, store.AsAppError(err, "application", identity.UserID)
	}

	a.logger.Info("application submitted", map[string]interface{}{
		"applicationId": app.ID,
		"completeness":  app.CompletenessScore,
		"tier":          app.Tier,
		"autoEligible":  app.AutoApprovalEligible,
	})

	if app.AutoApprovalEligible {
		if appErr := a.approve(ctx, app, SystemReviewer, "auto-approved on submission"); appErr != nil {
			return nil, appErr
		}
		metrics.ApplicationsAutoApproved.Inc()
	}
	return app, nil
}

// Review records an admin decision. Approval opens the shop through the
// same path as auto-approval.
func (a *ApplicationActions) Review(ctx context.Context, identity auth.Identity, applicationID string, approve bool, note string) (app *models.SellerApplication, appErr *apperrors.Error) {
	done := instrument("application_review")
	defer func() { done(appErr) }()

	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}

	app, err := a.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, store.AsAppError(err, "application", applicationID)
	}

	if approve {
		if appErr := a.approve(ctx, app, identity.UserID, note); appErr != nil {
			return nil, appErr
		}
		return app, nil
	}

	if err := a.apps.SetStatus(ctx, applicationID, models.ApplicationStatusRejected, identity.UserID, note); err != nil {
		return nil, store.AsAppError(err, "application", applicationID)
	}
	app.Status = models.ApplicationStatusRejected
	app.ReviewedBy = &identity.UserID
	app.ReviewNote = &note
	a.notify(ctx, app)
	return app, nil
}

func (a *ApplicationActions) approve(ctx context.Context, app *models.SellerApplication, reviewerID, note string) *apperrors.Error {
	if err := a.apps.SetStatus(ctx, app.ID, models.ApplicationStatusApproved, reviewerID, note); err != nil {
		return store.AsAppError(err, "application", app.ID)
	}
	app.Status = models.ApplicationStatusApproved
	app.ReviewedBy = &reviewerID
	if note != "" {
		app.ReviewNote = &note
	}

	shop, err := a.shops.CreateFromApplication(ctx, app)
	if err != nil {
		return store.AsAppError(err, "shop", app.ShopName)
	}
	a.logger.Info("shop opened", map[string]interface{}{
		"shopId":        shop.ID,
		"applicationId": app.ID,
		"reviewedBy":    reviewerID,
	})
	a.notify(ctx, app)
	return nil
}

// ListPending returns the admin review queue.
func (a *ApplicationActions) ListPending(ctx context.Context, identity auth.Identity, limit, offset int) ([]models.SellerApplication, *apperrors.Error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("admin role required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	apps, err := a.apps.ListByStatus(ctx, models.ApplicationStatusPending, limit, offset)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return apps, nil
}

// Get returns one application; admins see any, applicants their own.
func (a *ApplicationActions) Get(ctx context.Context, identity auth.Identity, applicationID string) (*models.SellerApplication, *apperrors.Error) {
	app, err := a.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, store.AsAppError(err, "application", applicationID)
	}
	if !identity.IsAdmin() && app.ApplicantID != identity.UserID {
		return nil, apperrors.NewUnauthorizedError("not your application")
	}
	return app, nil
}

func (a *ApplicationActions) notify(ctx context.Context, app *models.SellerApplication) {
	if a.notifier == nil {
		return
	}
	applicant, err := a.users.GetByID(ctx, app.ApplicantID)
	if err != nil {
		a.logger.WithError(err).Warn("decision notification skipped", map[string]interface{}{
			"applicationId": app.ID,
		})
		return
	}
	a.notifier.ApplicationDecision(ctx, applicant, app)
}
