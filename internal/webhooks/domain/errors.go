package domain

import (
	"github.com/meshpay/meshpay-go/internal/errors"
)

// Webhook signature errors.
var (
	// ErrMalformedHeader indicates the signature header does not parse.
	ErrMalformedHeader = errors.Wrap(errors.ErrInvalidInput, "malformed signature header")

	// ErrHeaderMissingTimestamp indicates the header has no timestamp or the
	// timestamp is not a valid integer. Kept distinct from
	// ErrHeaderMissingSignatures so integrators can log which part is broken.
	ErrHeaderMissingTimestamp = errors.Wrap(ErrMalformedHeader, "missing or non-numeric timestamp")

	// ErrHeaderMissingSignatures indicates the header carries no signature values.
	ErrHeaderMissingSignatures = errors.Wrap(ErrMalformedHeader, "no signature values")

	// ErrTimestampOutOfTolerance indicates the signed timestamp is outside the
	// allowed replay window. This is a freshness policy rejection, not a
	// cryptographic mismatch.
	ErrTimestampOutOfTolerance = errors.Wrap(errors.ErrUnauthorized, "signature timestamp outside tolerance")
)
