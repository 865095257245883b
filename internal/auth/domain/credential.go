// Package domain contains the bearer credential model and invariants.
package domain

import (
	"time"

	apperrors "github.com/meshpay/meshpay-go/internal/errors"
)

// BearerTokenType is the only token type the platform issues.
const BearerTokenType = "Bearer"

// Credential is an immutable bearer credential obtained from the platform's
// token endpoint. Refreshing produces a new Credential; an existing one is
// never mutated.
type Credential struct {
	Token     string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewCredential constructs a Credential, enforcing that the expiry is
// strictly after issuance and the token is non-empty.
func NewCredential(token string, issuedAt, expiresAt time.Time) (*Credential, error) {
	if token == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token is required")
	}
	if !expiresAt.After(issuedAt) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "expiry must be after issuance")
	}
	return &Credential{
		Token:     token,
		TokenType: BearerTokenType,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Fresh reports whether the credential is still usable at now, keeping the
// given safety margin before the actual expiry to avoid presenting a token
// that expires mid-flight.
func (c *Credential) Fresh(now time.Time, margin time.Duration) bool {
	return now.Add(margin).Before(c.ExpiresAt)
}

// Bearer returns the Authorization header value for this credential.
func (c *Credential) Bearer() string {
	return c.TokenType + " " + c.Token
}
