package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"evercraft/internal/cache"
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/models"
	"evercraft/internal/search"
	"evercraft/internal/store"
)

// shopPage is the public shop view: the shop row, its eco-profile, and its
// active products.
type shopPage struct {
	Shop       *models.Shop           `json:"shop"`
	EcoProfile *models.ShopEcoProfile `json:"ecoProfile,omitempty"`
	Products   []models.Product       `json:"products"`
}

// The shop header (row + eco profile) is cached under the shop key; the
// product list under the shop-products key, which product writes invalidate.
type shopHeader struct {
	Shop       *models.Shop           `json:"shop"`
	EcoProfile *models.ShopEcoProfile `json:"ecoProfile,omitempty"`
}

func (s *Server) getShop(c *gin.Context) {
	slug := c.Param("slug")

	var header shopHeader
	key := cache.ShopKey("slug:" + slug)
	if !s.cache.Get(c.Request.Context(), key, &header) {
		shop, err := s.shops.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			respondError(c, store.AsAppError(err, "shop", slug))
			return
		}
		header.Shop = shop
		if eco, err := s.shops.GetEcoProfile(c.Request.Context(), shop.ID); err == nil {
			header.EcoProfile = eco
		}
		s.cache.Set(c.Request.Context(), key, header)
	}

	products, appErr := s.shopProducts(c, header.Shop.ID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, shopPage{Shop: header.Shop, EcoProfile: header.EcoProfile, Products: products})
}

func (s *Server) shopProducts(c *gin.Context, shopID string) ([]models.Product, *apperrors.Error) {
	var products []models.Product
	key := cache.ShopProductsKey(shopID)
	if s.cache.Get(c.Request.Context(), key, &products) {
		return products, nil
	}
	products, err := s.products.ListByShop(c.Request.Context(), shopID, false)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	s.cache.Set(c.Request.Context(), key, products)
	return products, nil
}

func (s *Server) listShopProducts(c *gin.Context) {
	slug := c.Param("slug")

	shop, err := s.shops.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, store.AsAppError(err, "shop", slug))
		return
	}

	products, appErr := s.shopProducts(c, shop.ID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, products)
}

type productPage struct {
	Product    *models.Product           `json:"product"`
	EcoProfile *models.ProductEcoProfile `json:"ecoProfile,omitempty"`
}

func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")

	var page productPage
	key := cache.ProductKey(id)
	if s.cache.Get(c.Request.Context(), key, &page) {
		respond(c, http.StatusOK, page)
		return
	}

	product, err := s.products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, store.AsAppError(err, "product", id))
		return
	}
	// Archived products stay reachable to their owners through the seller
	// routes, not here.
	if product.Status != models.ProductStatusActive {
		respondError(c, apperrors.NewNotFoundError("product", id))
		return
	}
	page.Product = product
	if eco, err := s.products.GetEcoProfile(c.Request.Context(), id); err == nil {
		page.EcoProfile = eco
	}

	s.cache.Set(c.Request.Context(), key, page)
	respond(c, http.StatusOK, page)
}

func (s *Server) listCategories(c *gin.Context) {
	var categories []models.Category
	key := cache.CategoriesKey()
	if !s.cache.Get(c.Request.Context(), key, &categories) {
		var err error
		categories, err = s.products.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, apperrors.NewDatabaseError(err))
			return
		}
		s.cache.Set(c.Request.Context(), key, categories)
	}
	respond(c, http.StatusOK, categories)
}

func (s *Server) listNonprofits(c *gin.Context) {
	nonprofits, err := s.nonprofits.ListNonprofits(c.Request.Context())
	if err != nil {
		respondError(c, apperrors.NewDatabaseError(err))
		return
	}
	respond(c, http.StatusOK, nonprofits)
}

func (s *Server) searchProducts(c *gin.Context) {
	q := search.Query{
		Keywords:        c.Query("q"),
		CategoryID:      c.Query("category"),
		MinPriceCents:   queryInt64(c, "minPrice"),
		MaxPriceCents:   queryInt64(c, "maxPrice"),
		PlasticFreeOnly: c.Query("plasticFree") == "true",
		MinEcoScore:     queryInt(c, "minEcoScore"),
		SortBy:          c.Query("sort"),
		From:            queryInt(c, "from"),
		Size:            queryInt(c, "size"),
	}

	result, err := s.searcher.Search(c.Request.Context(), q)
	if err != nil {
		s.logger.WithError(err).Error("product search failed", map[string]interface{}{
			"keywords": q.Keywords,
		})
		respondError(c, apperrors.NewDatabaseError(err))
		return
	}
	respond(c, http.StatusOK, result)
}

func queryInt(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

func queryInt64(c *gin.Context, name string) int64 {
	v, _ := strconv.ParseInt(c.Query(name), 10, 64)
	return v
}
