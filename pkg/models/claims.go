package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the fields the client reads from the bearer token. The
// server signs them; the client never verifies and only displays them.
type TokenClaims struct {
	UserID string `json:"id,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Expiry returns the exp claim. ok is false when the token has none.
func (c TokenClaims) Expiry() (time.Time, bool) {
	if c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}

// Owner returns the user the token was issued to: the id claim, else sub.
func (c TokenClaims) Owner() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}
