package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "evercraft/internal/common/errors"
)

func (s *Server) platformOverview(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	overview, appErr := s.analytics.PlatformOverview(c.Request.Context(), identity)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, overview)
}

func (s *Server) revenueForecast(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	months := queryInt(c, "months")
	if months == 0 {
		months = 3
	}
	forecast, appErr := s.analytics.RevenueForecast(c.Request.Context(), identity, months)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, forecast)
}

func (s *Server) cohortRetention(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	months := queryInt(c, "months")
	if months == 0 {
		months = 12
	}
	cohorts, appErr := s.analytics.Cohorts(c.Request.Context(), identity, months)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, cohorts)
}

func (s *Server) topShops(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	from, to, appErr := periodFrom(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	shops, appErr := s.analytics.TopShops(c.Request.Context(), identity, from, to, queryInt(c, "limit"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, shops)
}

func (s *Server) topProducts(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	from, to, appErr := periodFrom(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	products, appErr := s.analytics.TopProducts(c.Request.Context(), identity, from, to, queryInt(c, "limit"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, products)
}

func (s *Server) donationSummary(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	from, to, appErr := periodFrom(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	donations, appErr := s.analytics.DonationSummary(c.Request.Context(), identity, from, to)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, donations)
}

func (s *Server) sellerDashboard(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	dashboard, appErr := s.analytics.SellerDashboard(c.Request.Context(), identity, c.Param("shopId"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, dashboard)
}

// periodFrom parses the from/to query dates. Defaults: the last 30 days.
func periodFrom(c *gin.Context) (time.Time, time.Time, *apperrors.Error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, apperrors.NewValidationError("from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, apperrors.NewValidationError("to must be YYYY-MM-DD")
		}
		to = parsed
	}
	return from, to, nil
}
