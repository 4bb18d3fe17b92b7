package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evercraft/internal/actions"
	apperrors "evercraft/internal/common/errors"
)

func (s *Server) submitApplication(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var input actions.SubmitApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	app, appErr := s.applications.Submit(c.Request.Context(), identity, input)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusCreated, app)
}

func (s *Server) getApplication(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	app, appErr := s.applications.Get(c.Request.Context(), identity, c.Param("id"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, app)
}

func (s *Server) listPendingApplications(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	apps, appErr := s.applications.ListPending(c.Request.Context(), identity, queryInt(c, "limit"), queryInt(c, "offset"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, apps)
}

type reviewBody struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

func (s *Server) reviewApplication(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var body reviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	app, appErr := s.applications.Review(c.Request.Context(), identity, c.Param("id"), body.Approve, body.Note)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, app)
}
