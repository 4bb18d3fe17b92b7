package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evercraft/internal/actions"
	apperrors "evercraft/internal/common/errors"
)

func (s *Server) createProduct(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var input actions.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	product, appErr := s.productOps.Create(c.Request.Context(), identity, input)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var input actions.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	product, appErr := s.productOps.Update(c.Request.Context(), identity, c.Param("id"), input)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	if appErr := s.productOps.Delete(c.Request.Context(), identity, c.Param("id")); appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}
