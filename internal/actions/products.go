package actions

import (
	"context"
	"encoding/json"
	"strings"

	"evercraft/internal/cache"
	"evercraft/internal/common/auth"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/logger"
	"evercraft/internal/ecoprofile"
	"evercraft/internal/models"
	"evercraft/internal/search"
	"evercraft/internal/store"
)

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Archive(ctx context.Context, id string) error
	ListByShop(ctx context.Context, shopID string, includeArchived bool) ([]models.Product, error)
	GetEcoProfile(ctx context.Context, productID string) (*models.ProductEcoProfile, error)
	SaveEcoProfile(ctx context.Context, p *models.ProductEcoProfile) error
}

type ShopReader interface {
	GetByID(ctx context.Context, id string) (*models.Shop, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context, prefixes ...string)
}

type Indexer interface {
	IndexProduct(ctx context.Context, doc *search.ProductDocument) error
	DeleteProduct(ctx context.Context, productID string) error
}

type ProductActions struct {
	products ProductStore
	shops    ShopReader
	cache    Invalidator
	index    Indexer
	logger   logger.Logger
}

func NewProductActions(products ProductStore, shops ShopReader, invalidator Invalidator, index Indexer, log logger.Logger) *ProductActions {
	return &ProductActions{
		products: products,
		shops:    shops,
		cache:    invalidator,
		index:    index,
		logger:   log.WithFields(map[string]interface{}{"component": "products"}),
	}
}

type ProductInput struct {
	CategoryID  string          `json:"categoryId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PriceCents  int64           `json:"priceCents"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
	EcoProfile  json.RawMessage `json:"ecoProfile,omitempty"`
}

func (in ProductInput) validate() *apperrors.Error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("product name is required")
	}
	if in.PriceCents <= 0 {
		return apperrors.NewValidationError("price must be positive")
	}
	if in.Stock < 0 {
		return apperrors.NewValidationError("stock cannot be negative")
	}
	switch models.ProductStatus(in.Status) {
	case "", models.ProductStatusDraft, models.ProductStatusActive:
	default:
		return apperrors.NewValidationError("status must be DRAFT or ACTIVE")
	}
	return nil
}

// Create adds a product to the seller's own shop.
func (a *ProductActions) Create(ctx context.Context, identity auth.Identity, input ProductInput) (product *models.Product, appErr *apperrors.Error) {
	done := instrument("product_create")
	defer func() { done(appErr) }()

	if !identity.IsSeller() {
		return nil, apperrors.NewUnauthorizedError("seller role required")
	}
	if appErr := input.validate(); appErr != nil {
		return nil, appErr
	}

	var eco *models.ProductEcoProfile
	if len(input.EcoProfile) > 0 {
		parsed, err := ecoprofile.ParseProductProfile(input.EcoProfile)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		parsed.CompletenessPercent = ecoprofile.ProductCompleteness(parsed)
		eco = &parsed
	}

	product = &models.Product{
		ShopID:      identity.ShopID,
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
		Status:      models.ProductStatus(input.Status),
	}
	if err := a.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if eco != nil {
		eco.ProductID = product.ID
		if err := a.products.SaveEcoProfile(ctx, eco); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
	}

	a.afterWrite(ctx, product, eco)
	return product, nil
}

// Update modifies a product the caller owns. When the eco profile is
// present its completeness is recomputed before saving.
func (a *ProductActions) Update(ctx context.Context, identity auth.Identity, productID string, input ProductInput) (product *models.Product, appErr *apperrors.Error) {
	done := instrument("product_update")
	defer func() { done(appErr) }()

	product, appErr = a.authorize(ctx, identity, productID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := input.validate(); appErr != nil {
		return nil, appErr
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.PriceCents = input.PriceCents
	product.Stock = input.Stock
	if input.Status != "" {
		product.Status = models.ProductStatus(input.Status)
	}
	if err := a.products.Update(ctx, product); err != nil {
		return nil, store.AsAppError(err, "product", productID)
	}

	var eco *models.ProductEcoProfile
	if len(input.EcoProfile) > 0 {
		parsed, err := ecoprofile.ParseProductProfile(input.EcoProfile)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		parsed.ProductID = product.ID
		parsed.CompletenessPercent = ecoprofile.ProductCompleteness(parsed)
		if err := a.products.SaveEcoProfile(ctx, &parsed); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		eco = &parsed
	}

	a.afterWrite(ctx, product, eco)
	return product, nil
}

// Delete archives the product and removes it from search.
func (a *ProductActions) Delete(ctx context.Context, identity auth.Identity, productID string) (appErr *apperrors.Error) {
	done := instrument("product_delete")
	defer func() { done(appErr) }()

	product, appErr := a.authorize(ctx, identity, productID)
	if appErr != nil {
		return appErr
	}
	if err := a.products.Archive(ctx, productID); err != nil {
		return store.AsAppError(err, "product", productID)
	}

	if err := a.index.DeleteProduct(ctx, productID); err != nil {
		a.logger.WithError(err).Warn("search delete failed", map[string]interface{}{
			"productId": productID,
		})
	}
	a.cache.Invalidate(ctx, cache.ProductKey(productID), cache.ShopProductsKey(product.ShopID))
	return nil
}

func (a *ProductActions) authorize(ctx context.Context, identity auth.Identity, productID string) (*models.Product, *apperrors.Error) {
	product, err := a.products.GetByID(ctx, productID)
	if err != nil {
		return nil, store.AsAppError(err, "product", productID)
	}
	if !identity.IsAdmin() && product.ShopID != identity.ShopID {
		return nil, apperrors.NewUnauthorizedError("product belongs to another shop")
	}
	return product, nil
}

// afterWrite refreshes the search index and drops stale cache entries.
// Both are best-effort.
func (a *ProductActions) afterWrite(ctx context.Context, product *models.Product, eco *models.ProductEcoProfile) {
	if eco == nil {
		if existing, err := a.products.GetEcoProfile(ctx, product.ID); err == nil {
			eco = existing
		}
	}

	var shopName string
	tier := string(models.TierStarter)
	if shop, err := a.shops.GetByID(ctx, product.ShopID); err == nil {
		shopName = shop.Name
		tier = string(shop.Tier)
	}

	if product.Status == models.ProductStatusActive {
		doc := search.DocumentFor(product, eco, shopName, tier)
		if err := a.index.IndexProduct(ctx, doc); err != nil {
			a.logger.WithError(err).Warn("search index failed", map[string]interface{}{
				"productId": product.ID,
			})
		}
	} else {
		if err := a.index.DeleteProduct(ctx, product.ID); err != nil {
			a.logger.WithError(err).Warn("search delete failed", map[string]interface{}{
				"productId": product.ID,
			})
		}
	}

	a.cache.Invalidate(ctx, cache.ProductKey(product.ID), cache.ShopProductsKey(product.ShopID))
}
