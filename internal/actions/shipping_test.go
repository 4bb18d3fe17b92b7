package actions

import (
	"context"
	"testing"

	"evercraft/internal/common/auth"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"
	"evercraft/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShippingStore struct {
	profiles map[string]*models.ShippingProfile
	nextID   int
}

func newFakeShippingStore() *fakeShippingStore {
	return &fakeShippingStore{profiles: map[string]*models.ShippingProfile{}}
}

func (f *fakeShippingStore) Create(_ context.Context, p *models.ShippingProfile) error {
	f.nextID++
	p.ID = "ship-" + string(rune('0'+f.nextID))
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeShippingStore) GetByID(_ context.Context, id string) (*models.ShippingProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeShippingStore) ListByShop(_ context.Context, shopID string) ([]models.ShippingProfile, error) {
	var out []models.ShippingProfile
	for _, p := range f.profiles {
		if p.ShopID == shopID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeShippingStore) Update(_ context.Context, p *models.ShippingProfile) error {
	if _, ok := f.profiles[p.ID]; !ok {
		return store.ErrNotFound
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeShippingStore) Delete(_ context.Context, id string) error {
	if _, ok := f.profiles[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.profiles, id)
	return nil
}

func newShippingActions() (*ShippingActions, *fakeShippingStore) {
	s := newFakeShippingStore()
	return NewShippingActions(s, logger.NewNoOpLogger()), s
}

func validShippingInput() ShippingInput {
	return ShippingInput{
		Name:          "Standard ground",
		CarrierName:   "DHL GoGreen",
		BaseRateCents: 450,
		PerItemCents:  50,
		MinDays:       2,
		MaxDays:       5,
		CarbonNeutral: true,
	}
}

func TestShippingCreate(t *testing.T) {
	actions, s := newShippingActions()

	profile, appErr := actions.Create(context.Background(), sellerIdent, validShippingInput())

	require.Nil(t, appErr)
	assert.Equal(t, "shop-9", profile.ShopID)
	assert.Len(t, s.profiles, 1)
}

func TestShippingCreate_RequiresSeller(t *testing.T) {
	actions, _ := newShippingActions()

	_, appErr := actions.Create(context.Background(), buyer, validShippingInput())

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
}

func TestShippingCreate_Validation(t *testing.T) {
	actions, _ := newShippingActions()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ShippingInput)
	}{
		{"empty name", func(in *ShippingInput) { in.Name = "" }},
		{"negative base rate", func(in *ShippingInput) { in.BaseRateCents = -1 }},
		{"negative per item", func(in *ShippingInput) { in.PerItemCents = -1 }},
		{"window reversed", func(in *ShippingInput) { in.MinDays = 6; in.MaxDays = 3 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validShippingInput()
			tc.mutate(&input)
			_, appErr := actions.Create(ctx, sellerIdent, input)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestShippingUpdate_Ownership(t *testing.T) {
	actions, _ := newShippingActions()
	ctx := context.Background()

	profile, appErr := actions.Create(ctx, sellerIdent, validShippingInput())
	require.Nil(t, appErr)

	input := validShippingInput()
	input.BaseRateCents = 600
	updated, appErr := actions.Update(ctx, sellerIdent, profile.ID, input)
	require.Nil(t, appErr)
	assert.Equal(t, int64(600), updated.BaseRateCents)

	intruder := auth.Identity{UserID: "seller-2", Role: auth.RoleSeller, ShopID: "shop-2"}
	_, appErr = actions.Update(ctx, intruder, profile.ID, input)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
}

func TestShippingDelete(t *testing.T) {
	actions, s := newShippingActions()
	ctx := context.Background()

	profile, appErr := actions.Create(ctx, sellerIdent, validShippingInput())
	require.Nil(t, appErr)

	appErr = actions.Delete(ctx, sellerIdent, profile.ID)
	require.Nil(t, appErr)
	assert.Empty(t, s.profiles)

	appErr = actions.Delete(ctx, sellerIdent, profile.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestShippingList_Scoping(t *testing.T) {
	actions, _ := newShippingActions()
	ctx := context.Background()

	_, appErr := actions.Create(ctx, sellerIdent, validShippingInput())
	require.Nil(t, appErr)

	profiles, appErr := actions.List(ctx, sellerIdent, "shop-9")
	require.Nil(t, appErr)
	assert.Len(t, profiles, 1)

	_, appErr = actions.List(ctx, sellerIdent, "shop-2")
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)

	profiles, appErr = actions.List(ctx, adminIdent, "shop-9")
	require.Nil(t, appErr)
	assert.Len(t, profiles, 1)
}
