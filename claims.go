package careers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims is the verified identity carried by a bearer token. It is the
// sole source of truth for "who is the actor" on every authorization
// decision; no session state is kept server side.
type AuthClaims interface {
	Subject() string
	UserID() (uuid.UUID, error)
	CompanyID() (uuid.UUID, error)
	Email() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete claim set signed into tokens.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string `json:"uid,omitempty"`
	CID       string `json:"cid,omitempty"`
	UserEmail string `json:"email,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim.
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the account id, falling back to the subject claim.
func (c *JWTClaims) UserID() (uuid.UUID, error) {
	if c.UID != "" {
		return uuid.Parse(c.UID)
	}
	return uuid.Parse(c.RegisteredClaims.Subject)
}

// CompanyID returns the tenant the actor belongs to.
func (c *JWTClaims) CompanyID() (uuid.UUID, error) {
	return uuid.Parse(c.CID)
}

// Email returns the account email embedded at issue time.
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Expires returns the expiration time or zero when absent.
func (c *JWTClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// IssuedAt returns the issue time or zero when absent.
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}
