// Package service implements webhook signature generation and verification.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"

	apperrors "github.com/meshpay/meshpay-go/internal/errors"
	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
)

// hmacSigner implements Signer using HMAC-SHA256 over the canonical
// "{timestamp}.{payload}" string, matching the platform's wire format.
type hmacSigner struct{}

// NewSigner creates a new HMAC-SHA256 webhook signer.
func NewSigner() Signer {
	return &hmacSigner{}
}

// Sign computes the signature of the raw payload exactly as received; callers
// must not re-serialize the body before signing. Identical inputs always
// produce identical output.
func (s *hmacSigner) Sign(payload []byte, secret string, timestamp int64) (string, error) {
	if len(payload) == 0 {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "payload is required")
	}
	if secret == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "secret is required")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte{'.'})
	mac.Write(payload)

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// ParseSignatureHeader parses a header of the form "t=<ts>,v=<sig1>,v=<sig2>".
// The timestamp key must appear exactly once; the signature key may repeat and
// candidate order is preserved. Unknown keys are ignored so new header fields
// don't break older integrations.
func (s *hmacSigner) ParseSignatureHeader(header string) (*webhooksDomain.SignatureHeader, error) {
	if header == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "signature header is required")
	}

	var (
		timestamp    int64
		hasTimestamp bool
		signatures   []string
	)

	for _, segment := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(segment), "=")
		if !found {
			continue
		}

		switch key {
		case "t":
			if hasTimestamp {
				return nil, webhooksDomain.ErrHeaderMissingTimestamp
			}
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, webhooksDomain.ErrHeaderMissingTimestamp
			}
			timestamp = parsed
			hasTimestamp = true
		case "v":
			if value != "" {
				signatures = append(signatures, value)
			}
		}
	}

	if !hasTimestamp {
		return nil, webhooksDomain.ErrHeaderMissingTimestamp
	}
	if len(signatures) == 0 {
		return nil, webhooksDomain.ErrHeaderMissingSignatures
	}

	return &webhooksDomain.SignatureHeader{
		Timestamp:  timestamp,
		Signatures: signatures,
	}, nil
}
