package blog

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BlogClaims is the signed identity payload carried by the session cookie.
// It is a projection of the user record and never includes the password
// digest or salt.
type BlogClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"uid,omitempty"`
	FullName string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// UserID returns the user ID
func (c *BlogClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Role returns the global role
func (c *BlogClaims) Role() string {
	return c.UserRole
}

// Expires returns the expiration time
func (c *BlogClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAtTime returns the issued at time
func (c *BlogClaims) IssuedAtTime() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
