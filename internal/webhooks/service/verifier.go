package service

import (
	"crypto/hmac"
	"time"

	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
)

// hmacVerifier implements Verifier. It is stateless apart from its
// configuration and safe for concurrent use.
type hmacVerifier struct {
	signer    Signer
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier creates a verifier with the given replay tolerance.
// A non-positive tolerance falls back to domain.DefaultTolerance.
func NewVerifier(signer Signer, tolerance time.Duration) Verifier {
	if tolerance <= 0 {
		tolerance = webhooksDomain.DefaultTolerance
	}
	return &hmacVerifier{
		signer:    signer,
		tolerance: tolerance,
		now:       time.Now,
	}
}

// Verify parses the header, enforces the replay window, recomputes the
// expected signature with the header's timestamp and compares it against
// every candidate in constant time. Any matching candidate authenticates the
// payload; the platform dual-signs during key rotation so the caller's secret
// is not required to match the first candidate.
func (v *hmacVerifier) Verify(payload []byte, header string, secret string) (bool, error) {
	parsed, err := v.signer.ParseSignatureHeader(header)
	if err != nil {
		return false, err
	}

	skew := v.now().Unix() - parsed.Timestamp
	if skew < 0 {
		skew = -skew
	}
	// Compare in whole seconds; converting an arbitrary skew to a Duration
	// can overflow int64 nanoseconds. A negative skew after negation means
	// the subtraction itself overflowed, which only happens far outside any
	// sane window.
	if skew < 0 || skew > int64(v.tolerance/time.Second) {
		return false, webhooksDomain.ErrTimestampOutOfTolerance
	}

	expected, err := v.signer.Sign(payload, secret, parsed.Timestamp)
	if err != nil {
		return false, err
	}

	for _, candidate := range parsed.Signatures {
		if hmac.Equal([]byte(candidate), []byte(expected)) {
			return true, nil
		}
	}

	// A mismatch is a normal negative result, not an error.
	return false, nil
}
