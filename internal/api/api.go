// Package api is the HTTP surface: a thin gin translation of the action
// services. Handlers decode input, resolve the caller identity, invoke one
// action, and render the uniform success/error envelope. No business logic
// lives here.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"evercraft/internal/common/auth"
	"evercraft/internal/common/config"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"
	"evercraft/internal/search"
)

// ShopCatalog is the public read side of the shop store.
type ShopCatalog interface {
	GetBySlug(ctx context.Context, slug string) (*models.Shop, error)
	GetEcoProfile(ctx context.Context, shopID string) (*models.ShopEcoProfile, error)
}

// ProductCatalog is the public read side of the product store.
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	ListByShop(ctx context.Context, shopID string, includeArchived bool) ([]models.Product, error)
	GetEcoProfile(ctx context.Context, productID string) (*models.ProductEcoProfile, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type NonprofitCatalog interface {
	ListNonprofits(ctx context.Context) ([]models.Nonprofit, error)
}

type Searcher interface {
	Search(ctx context.Context, q search.Query) (*search.Result, error)
}

// CatalogCache is the read-through cache for the public browse endpoints.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
}

// Server wires the action services into the router. Every field is an
// already-constructed collaborator; Server owns no resources.
type Server struct {
	cfg          config.Config
	logger       logger.Logger
	shops        ShopCatalog
	products     ProductCatalog
	nonprofits   NonprofitCatalog
	searcher     Searcher
	cache        CatalogCache
	applications ApplicationActions
	productOps   ProductActions
	shippingOps  ShippingActions
	paymentOps   PaymentActions
	analytics    AnalyticsService
	payouts      PayoutService
}

type Deps struct {
	Config       config.Config
	Logger       logger.Logger
	Shops        ShopCatalog
	Products     ProductCatalog
	Nonprofits   NonprofitCatalog
	Searcher     Searcher
	Cache        CatalogCache
	Applications ApplicationActions
	ProductOps   ProductActions
	ShippingOps  ShippingActions
	PaymentOps   PaymentActions
	Analytics    AnalyticsService
	Payouts      PayoutService
}

func NewServer(deps Deps) *Server {
	return &Server{
		cfg:          deps.Config,
		logger:       deps.Logger.WithFields(map[string]interface{}{"component": "api"}),
		shops:        deps.Shops,
		products:     deps.Products,
		nonprofits:   deps.Nonprofits,
		searcher:     deps.Searcher,
		cache:        deps.Cache,
		applications: deps.Applications,
		productOps:   deps.ProductOps,
		shippingOps:  deps.ShippingOps,
		paymentOps:   deps.PaymentOps,
		analytics:    deps.Analytics,
		payouts:      deps.Payouts,
	}
}

// Router builds the full route tree. Public browse endpoints carry no auth;
// everything else sits behind the JWT middleware with role gates per group.
func (s *Server) Router() *gin.Engine {
	if s.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": s.cfg.App.Version})
	})

	v1 := r.Group("/api/v1")

	public := v1.Group("")
	{
		public.GET("/categories", s.listCategories)
		public.GET("/nonprofits", s.listNonprofits)
		public.GET("/shops/:slug", s.getShop)
		public.GET("/shops/:slug/products", s.listShopProducts)
		public.GET("/products/:id", s.getProduct)
		public.GET("/search", s.searchProducts)
	}

	authed := v1.Group("", auth.Middleware(s.cfg.Auth.JWTSecret))
	{
		authed.POST("/applications", s.submitApplication)
		authed.GET("/applications/:id", s.getApplication)
	}

	seller := authed.Group("/seller", auth.RequireRole(auth.RoleSeller, auth.RoleAdmin))
	{
		seller.POST("/products", s.createProduct)
		seller.PUT("/products/:id", s.updateProduct)
		seller.DELETE("/products/:id", s.deleteProduct)
		seller.POST("/shipping-profiles", s.createShippingProfile)
		seller.PUT("/shipping-profiles/:id", s.updateShippingProfile)
		seller.DELETE("/shipping-profiles/:id", s.deleteShippingProfile)
		seller.GET("/shops/:shopId/shipping-profiles", s.listShippingProfiles)
		seller.GET("/shops/:shopId/dashboard", s.sellerDashboard)
		seller.GET("/shops/:shopId/payouts", s.payoutHistory)
	}

	admin := authed.Group("/admin", auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/applications", s.listPendingApplications)
		admin.POST("/applications/:id/review", s.reviewApplication)
		admin.GET("/analytics/overview", s.platformOverview)
		admin.GET("/analytics/forecast", s.revenueForecast)
		admin.GET("/analytics/cohorts", s.cohortRetention)
		admin.GET("/analytics/top-shops", s.topShops)
		admin.GET("/analytics/top-products", s.topProducts)
		admin.GET("/analytics/donations", s.donationSummary)
		admin.POST("/payouts/schedule", s.schedulePayouts)
		admin.POST("/payouts/:id/complete", s.completePayout)
		admin.POST("/shops/:shopId/payouts", s.scheduleShopPayout)
		admin.POST("/payments", s.recordPayment)
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
