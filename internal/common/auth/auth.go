// Package auth is the identity boundary: it verifies JWTs issued by the
// external identity provider and exposes the caller's id and role. Everything
// downstream treats it as an opaque collaborator.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the platform role carried in the token.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Identity is the verified caller, passed into every action.
type Identity struct {
	UserID string
	Role   Role
	ShopID string // set for sellers, empty otherwise
}

func (id Identity) IsAdmin() bool  { return id.Role == RoleAdmin }
func (id Identity) IsSeller() bool { return id.Role == RoleSeller }

// Claims is the JWT payload shape.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	ShopID string `json:"shopId,omitempty"`
	jwt.RegisteredClaims
}

// Verify parses and validates a bearer token against the shared secret.
func Verify(tokenString, secret string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Identity{
		UserID: claims.UserID,
		Role:   Role(claims.Role),
		ShopID: claims.ShopID,
	}, nil
}

// Sign issues a token. Used by tests and local tooling; production tokens
// come from the identity provider.
func Sign(identity Identity, secret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: identity.UserID,
		Role:   string(identity.Role),
		ShopID: identity.ShopID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
