package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evercraft/internal/actions"
	apperrors "evercraft/internal/common/errors"
)

func (s *Server) schedulePayouts(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	from, to, appErr := periodFrom(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	payouts, appErr := s.payouts.ScheduleAll(c.Request.Context(), identity, from, to)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusCreated, payouts)
}

func (s *Server) scheduleShopPayout(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	from, to, appErr := periodFrom(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	payout, appErr := s.payouts.ScheduleForShop(c.Request.Context(), identity, c.Param("shopId"), from, to)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusCreated, payout)
}

func (s *Server) payoutHistory(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	history, appErr := s.payouts.History(c.Request.Context(), identity, c.Param("shopId"), queryInt(c, "limit"), queryInt(c, "offset"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, history)
}

func (s *Server) completePayout(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	if appErr := s.payouts.Complete(c.Request.Context(), identity, c.Param("id")); appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusOK, gin.H{"completed": true})
}

func (s *Server) recordPayment(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var input actions.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	payment, appErr := s.paymentOps.Record(c.Request.Context(), identity, input)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respond(c, http.StatusCreated, payment)
}
