package service

import (
	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
)

// Signer computes and parses platform webhook signatures.
type Signer interface {
	// Sign computes the HMAC-SHA256 signature of "{timestamp}.{payload}" keyed
	// by secret, encoded as unpadded URL-safe base64.
	Sign(payload []byte, secret string, timestamp int64) (string, error)

	// ParseSignatureHeader parses a "t=<ts>,v=<sig>,..." header value.
	ParseSignatureHeader(header string) (*webhooksDomain.SignatureHeader, error)
}

// Verifier authenticates inbound webhook payloads against a signing secret.
type Verifier interface {
	// Verify reports whether payload carries a valid, fresh signature.
	// A well-formed header whose signatures simply don't match yields
	// (false, nil); errors are reserved for malformed input and policy
	// violations such as an out-of-tolerance timestamp.
	Verify(payload []byte, header string, secret string) (bool, error)
}
