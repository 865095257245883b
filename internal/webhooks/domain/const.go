package domain

import "time"

const (
	// SignatureHeaderName is the HTTP header carrying the platform signature.
	SignatureHeaderName = "Webhooks-Signature"

	// DefaultTolerance is the maximum allowed skew between the signed timestamp
	// and the verifier's clock before a payload is rejected as a replay.
	DefaultTolerance = 300 * time.Second

	// MinSecretLength is the minimum number of characters the platform accepts
	// when registering a signing secret.
	MinSecretLength = 32
)
