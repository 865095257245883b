package domain

import (
	"github.com/meshpay/meshpay-go/internal/errors"
)

// Credential lifecycle errors.
var (
	// ErrCredentialUnavailable indicates a credential could not be obtained or
	// refreshed. The underlying exchange failure is chained; callers must not
	// fall back to a stale or expired credential.
	ErrCredentialUnavailable = errors.Wrap(errors.ErrUnavailable, "credential unavailable")
)
