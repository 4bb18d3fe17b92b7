package actions

import (
	"context"
	"strings"

	"evercraft/internal/common/auth"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"
	"evercraft/internal/store"
)

type ShippingStore interface {
	Create(ctx context.Context, p *models.ShippingProfile) error
	GetByID(ctx context.Context, id string) (*models.ShippingProfile, error)
	ListByShop(ctx context.Context, shopID string) ([]models.ShippingProfile, error)
	Update(ctx context.Context, p *models.ShippingProfile) error
	Delete(ctx context.Context, id string) error
}

type ShippingActions struct {
	shipping ShippingStore
	logger   logger.Logger
}

func NewShippingActions(shipping ShippingStore, log logger.Logger) *ShippingActions {
	return &ShippingActions{
		shipping: shipping,
		logger:   log.WithFields(map[string]interface{}{"component": "shipping"}),
	}
}

type ShippingInput struct {
	Name          string `json:"name"`
	CarrierName   string `json:"carrierName"`
	BaseRateCents int64  `json:"baseRateCents"`
	PerItemCents  int64  `json:"perItemCents"`
	MinDays       int    `json:"minDays"`
	MaxDays       int    `json:"maxDays"`
	CarbonNeutral bool   `json:"carbonNeutral"`
}

func (in ShippingInput) validate() *apperrors.Error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("shipping profile name is required")
	}
	if in.BaseRateCents < 0 || in.PerItemCents < 0 {
		return apperrors.NewValidationError("rates cannot be negative")
	}
	if in.MinDays < 0 || in.MaxDays < in.MinDays {
		return apperrors.NewValidationError("delivery window is invalid")
	}
	return nil
}

func (a *ShippingActions) Create(ctx context.Context, identity auth.Identity, input ShippingInput) (profile *models.ShippingProfile, appErr *apperrors.Error) {
	done := instrument("shipping_create")
	defer func() { done(appErr) }()

	if !identity.IsSeller() {
		return nil, apperrors.NewUnauthorizedError("seller role required")
	}
	if appErr := input.validate(); appErr != nil {
		return nil, appErr
	}

	profile = &models.ShippingProfile{
		ShopID:        identity.ShopID,
		Name:          strings.TrimSpace(input.Name),
		CarrierName:   input.CarrierName,
		BaseRateCents: input.BaseRateCents,
		PerItemCents:  input.PerItemCents,
		MinDays:       input.MinDays,
		MaxDays:       input.MaxDays,
		CarbonNeutral: input.CarbonNeutral,
	}
	if err := a.shipping.Create(ctx, profile); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return profile, nil
}

func (a *ShippingActions) Update(ctx context.Context, identity auth.Identity, profileID string, input ShippingInput) (profile *models.ShippingProfile, appErr *apperrors.Error) {
	done := instrument("shipping_update")
	defer func() { done(appErr) }()

	profile, appErr = a.authorize(ctx, identity, profileID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := input.validate(); appErr != nil {
		return nil, appErr
	}

	profile.Name = strings.TrimSpace(input.Name)
	profile.CarrierName = input.CarrierName
	profile.BaseRateCents = input.BaseRateCents
	profile.PerItemCents = input.PerItemCents
	profile.MinDays = input.MinDays
	profile.MaxDays = input.MaxDays
	profile.CarbonNeutral = input.CarbonNeutral
	if err := a.shipping.Update(ctx, profile); err != nil {
		return nil, store.AsAppError(err, "shipping profile", profileID)
	}
	return profile, nil
}

func (a *ShippingActions) Delete(ctx context.Context, identity auth.Identity, profileID string) (appErr *apperrors.Error) {
	done := instrument("shipping_delete")
	defer func() { done(appErr) }()

	if _, appErr := a.authorize(ctx, identity, profileID); appErr != nil {
		return appErr
	}
	if err := a.shipping.Delete(ctx, profileID); err != nil {
		return store.AsAppError(err, "shipping profile", profileID)
	}
	return nil
}

// List returns the shop's shipping profiles. Sellers see their own shop.
func (a *ShippingActions) List(ctx context.Context, identity auth.Identity, shopID string) ([]models.ShippingProfile, *apperrors.Error) {
	if !identity.IsAdmin() {
		if !identity.IsSeller() || identity.ShopID != shopID {
			return nil, apperrors.NewUnauthorizedError("shipping profiles belong to another shop")
		}
	}
	profiles, err := a.shipping.ListByShop(ctx, shopID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return profiles, nil
}

func (a *ShippingActions) authorize(ctx context.Context, identity auth.Identity, profileID string) (*models.ShippingProfile, *apperrors.Error) {
	profile, err := a.shipping.GetByID(ctx, profileID)
	if err != nil {
		return nil, store.AsAppError(err, "shipping profile", profileID)
	}
	if !identity.IsAdmin() && profile.ShopID != identity.ShopID {
		return nil, apperrors.NewUnauthorizedError("shipping profile belongs to another shop")
	}
	return profile, nil
}
