package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evercraft/internal/common/auth"
	apperrors "evercraft/internal/common/errors"
)

// Every endpoint renders the same envelope: {"success": true, "data": ...}
// or {"success": false, "error": "..."} with the message passed through
// verbatim.

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, appErr *apperrors.Error) {
	c.JSON(statusFor(appErr.Code), gin.H{"success": false, "error": appErr.UserMessage()})
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeUnauthorized:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// identityFrom aborts with 403 when the middleware did not set an identity;
// that only happens on a misrouted group, not in normal traffic.
func identityFrom(c *gin.Context) (auth.Identity, bool) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "no identity"})
	}
	return identity, ok
}
