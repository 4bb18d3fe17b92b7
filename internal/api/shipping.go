package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evercraft/internal/actions"
	apperrors "evercraft/internal/common/errors"
)

func (s *Server) createShippingProfile(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var input actions.ShippingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	profile, appErr := s.shippingOps.Create(c.Request.Context(), identity, input)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusCreated, profile)
}

func (s *Server) updateShippingProfile(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var input actions.ShippingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	profile, appErr := s.shippingOps.Update(c.Request.Context(), identity, c.Param("id"), input)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, profile)
}

func (s *Server) deleteShippingProfile(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	if appErr := s.shippingOps.Delete(c.Request.Context(), identity, c.Param("id")); appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) listShippingProfiles(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	profiles, appErr := s.shippingOps.List(c.Request.Context(), identity, c.Param("shopId"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, profiles)
}
