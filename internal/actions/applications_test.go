package actions

import (
	"context"
	"encoding/json"
	"testing"

	"evercraft/internal/common/auth"
	"evercraft/internal/common/config"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"
	"evercraft/internal/scoring"
	"evercraft/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppStore struct {
	apps      map[string]*models.SellerApplication
	hasOpen   bool
	createErr error
	statuses  []models.ApplicationStatus
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{apps: map[string]*models.SellerApplication{}}
}

func (f *fakeAppStore) Create(_ context.Context, app *models.SellerApplication) error {
	if f.createErr != nil {
		return f.createErr
	}
	if app.ID == "" {
		app.ID = "app-1"
	}
	f.apps[app.ID] = app
	return nil
}

func (f *fakeAppStore) GetByID(_ context.Context, id string) (*models.SellerApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppStore) HasOpen(_ context.Context, _ string) (bool, error) {
	return f.hasOpen, nil
}

func (f *fakeAppStore) ListByStatus(_ context.Context, status models.ApplicationStatus, _, _ int) ([]models.SellerApplication, error) {
	var out []models.SellerApplication
	for _, app := range f.apps {
		if app.Status == status {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeAppStore) SetStatus(_ context.Context, id string, status models.ApplicationStatus, reviewerID, note string) error {
	app, ok := f.apps[id]
	if !ok {
		return store.ErrNotFound
	}
	app.Status = status
	app.ReviewedBy = &reviewerID
	app.ReviewNote = &note
	f.statuses = append(f.statuses, status)
	return nil
}

type fakeShopCreator struct {
	created []string
	err     error
}

func (f *fakeShopCreator) CreateFromApplication(_ context.Context, app *models.SellerApplication) (*models.Shop, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, app.ID)
	return &models.Shop{ID: "shop-1", OwnerID: app.ApplicantID, Name: app.ShopName, Tier: app.Tier}, nil
}

type fakeUserReader struct{}

func (fakeUserReader) GetByID(_ context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, Email: id + "@example.com", Name: "Sam"}, nil
}

type fakeDecisionNotifier struct {
	decisions []models.ApplicationStatus
}

func (f *fakeDecisionNotifier) ApplicationDecision(_ context.Context, _ *models.User, app *models.SellerApplication) {
	f.decisions = append(f.decisions, app.Status)
}

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		AutoApprovalThreshold: 90,
		LeaderTierThreshold:   80,
		EstablishedThreshold:  50,
		MinDescriptionLength:  50,
	}
}

func newAppActions(apps *fakeAppStore, shops *fakeShopCreator, notifier DecisionNotifier) *ApplicationActions {
	return NewApplicationActions(apps, shops, fakeUserReader{}, scoring.NewScorer(testScoringConfig()),
		notifier, logger.NewNoOpLogger())
}

var (
	buyer       = auth.Identity{UserID: "user-1", Role: auth.RoleBuyer}
	sellerIdent = auth.Identity{UserID: "seller-1", Role: auth.RoleSeller, ShopID: "shop-9"}
	adminIdent  = auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}
)

// All ten toggles plus every optional field: completeness 100.
const fullProfileJSON = `{
	"recycledPackaging": true, "plasticFreePackaging": true, "localSourcing": true,
	"organicMaterials": true, "renewableEnergy": true, "carbonNeutralShipping": true,
	"fairTradeCertified": true, "zeroWasteProduction": true, "repairService": true,
	"takeBackProgram": true,
	"annualCarbonAuditKg": 1200, "renewableEnergyShare": 80, "recycledMaterialShare": 90,
	"waterUsageLiters": 5000, "certifications": "GOTS", "supplyChainNotes": "two suppliers",
	"offsetProgram": "Gold Standard"
}`

const partialProfileJSON = `{"recycledPackaging": true, "localSourcing": true}`

const longDescription = "We hand-make homewares from reclaimed oak sourced within fifty kilometers of our workshop."

func TestSubmit_AutoApproval(t *testing.T) {
	apps := newFakeAppStore()
	shops := &fakeShopCreator{}
	notifier := &fakeDecisionNotifier{}
	actions := newAppActions(apps, shops, notifier)

	app, appErr := actions.Submit(context.Background(), buyer, SubmitApplicationInput{
		ShopName:            "Willow & Wool",
		BusinessDescription: longDescription,
		EcoProfile:          json.RawMessage(fullProfileJSON),
	})

	require.Nil(t, appErr)
	assert.Equal(t, 100, app.CompletenessScore)
	assert.Equal(t, models.TierLeader, app.Tier)
	assert.True(t, app.AutoApprovalEligible)
	assert.Equal(t, models.ApplicationStatusApproved, app.Status)
	require.NotNil(t, app.ReviewedBy)
	assert.Equal(t, SystemReviewer, *app.ReviewedBy)
	assert.Equal(t, []string{"app-1"}, shops.created)
	assert.Equal(t, []models.ApplicationStatus{models.ApplicationStatusApproved}, notifier.decisions)
}

func TestSubmit_BelowThresholdStaysPending(t *testing.T) {
	apps := newFakeAppStore()
	shops := &fakeShopCreator{}
	actions := newAppActions(apps, shops, &fakeDecisionNotifier{})

	app, appErr := actions.Submit(context.Background(), buyer, SubmitApplicationInput{
		ShopName:            "Willow & Wool",
		BusinessDescription: longDescription,
		EcoProfile:          json.RawMessage(partialProfileJSON),
	})

	require.Nil(t, appErr)
	assert.False(t, app.AutoApprovalEligible)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Empty(t, shops.created)
}

func TestSubmit_InvalidProfile(t *testing.T) {
	actions := newAppActions(newFakeAppStore(), &fakeShopCreator{}, nil)

	_, appErr := actions.Submit(context.Background(), buyer, SubmitApplicationInput{
		ShopName:   "Willow & Wool",
		EcoProfile: json.RawMessage(`{"recycledPackaging": "yes"}`),
	})

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestSubmit_MissingShopName(t *testing.T) {
	actions := newAppActions(newFakeAppStore(), &fakeShopCreator{}, nil)

	_, appErr := actions.Submit(context.Background(), buyer, SubmitApplicationInput{
		ShopName:   "   ",
		EcoProfile: json.RawMessage(partialProfileJSON),
	})

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestSubmit_DuplicateOpenApplication(t *testing.T) {
	apps := newFakeAppStore()
	apps.hasOpen = true
	actions := newAppActions(apps, &fakeShopCreator{}, nil)

	_, appErr := actions.Submit(context.Background(), buyer, SubmitApplicationInput{
		ShopName:   "Willow & Wool",
		EcoProfile: json.RawMessage(partialProfileJSON),
	})

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestSubmit_SellerAlreadyHasShop(t *testing.T) {
	actions := newAppActions(newFakeAppStore(), &fakeShopCreator{}, nil)

	_, appErr := actions.Submit(context.Background(), sellerIdent, SubmitApplicationInput{
		ShopName:   "Second Shop",
		EcoProfile: json.RawMessage(partialProfileJSON),
	})

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestSubmit_ConcurrentShopCreation(t *testing.T) {
	apps := newFakeAppStore()
	shops := &fakeShopCreator{err: store.ErrAlreadyExists}
	actions := newAppActions(apps, shops, nil)

	_, appErr := actions.Submit(context.Background(), buyer, SubmitApplicationInput{
		ShopName:            "Willow & Wool",
		BusinessDescription: longDescription,
		EcoProfile:          json.RawMessage(fullProfileJSON),
	})

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestReview_Approve(t *testing.T) {
	apps := newFakeAppStore()
	apps.apps["app-1"] = &models.SellerApplication{
		ID:          "app-1",
		ApplicantID: "user-1",
		ShopName:    "Willow & Wool",
		Tier:        models.TierEstablished,
		Status:      models.ApplicationStatusPending,
	}
	shops := &fakeShopCreator{}
	notifier := &fakeDecisionNotifier{}
	actions := newAppActions(apps, shops, notifier)

	app, appErr := actions.Review(context.Background(), adminIdent, "app-1", true, "solid profile")

	require.Nil(t, appErr)
	assert.Equal(t, models.ApplicationStatusApproved, app.Status)
	assert.Equal(t, []string{"app-1"}, shops.created)
	assert.Len(t, notifier.decisions, 1)
}

func TestReview_Reject(t *testing.T) {
	apps := newFakeAppStore()
	apps.apps["app-1"] = &models.SellerApplication{
		ID:          "app-1",
		ApplicantID: "user-1",
		Status:      models.ApplicationStatusPending,
	}
	shops := &fakeShopCreator{}
	notifier := &fakeDecisionNotifier{}
	actions := newAppActions(apps, shops, notifier)

	app, appErr := actions.Review(context.Background(), adminIdent, "app-1", false, "too thin")

	require.Nil(t, appErr)
	assert.Equal(t, models.ApplicationStatusRejected, app.Status)
	require.NotNil(t, app.ReviewNote)
	assert.Equal(t, "too thin", *app.ReviewNote)
	assert.Empty(t, shops.created)
	assert.Equal(t, []models.ApplicationStatus{models.ApplicationStatusRejected}, notifier.decisions)
}

func TestReview_RequiresAdmin(t *testing.T) {
	actions := newAppActions(newFakeAppStore(), &fakeShopCreator{}, nil)

	_, appErr := actions.Review(context.Background(), buyer, "app-1", true, "")

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
}

func TestReview_UnknownApplication(t *testing.T) {
	actions := newAppActions(newFakeAppStore(), &fakeShopCreator{}, nil)

	_, appErr := actions.Review(context.Background(), adminIdent, "missing", true, "")

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestGet_ApplicantScoping(t *testing.T) {
	apps := newFakeAppStore()
	apps.apps["app-1"] = &models.SellerApplication{
		ID:          "app-1",
		ApplicantID: "user-1",
		Status:      models.ApplicationStatusPending,
	}
	actions := newAppActions(apps, &fakeShopCreator{}, nil)
	ctx := context.Background()

	_, appErr := actions.Get(ctx, buyer, "app-1")
	assert.Nil(t, appErr)

	other := auth.Identity{UserID: "user-2", Role: auth.RoleBuyer}
	_, appErr = actions.Get(ctx, other, "app-1")
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)

	_, appErr = actions.Get(ctx, adminIdent, "app-1")
	assert.Nil(t, appErr)
}
