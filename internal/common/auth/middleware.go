package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Middleware verifies the bearer token and stores the Identity on the
// request context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing credentials"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "malformed authorization header"})
			c.Abort()
			return
		}

		identity, err := Verify(tokenString, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// RequireRole gates a route group on one of the allowed roles.
func RequireRole(allowed ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := FromContext(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "no identity"})
			c.Abort()
			return
		}

		for _, role := range allowed {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "insufficient role"})
		c.Abort()
	}
}

// FromContext returns the verified Identity set by Middleware.
func FromContext(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}
