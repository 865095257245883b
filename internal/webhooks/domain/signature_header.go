// Package domain contains the webhook signature types and invariants.
package domain

// SignatureHeader is the parsed form of the platform's Webhooks-Signature
// header: one unix timestamp and one or more candidate signature values.
// The platform may dual-sign during key rotation, so verification succeeds
// if any candidate matches.
type SignatureHeader struct {
	// Timestamp is the signing time in seconds since the unix epoch.
	Timestamp int64

	// Signatures holds the candidate signature values in header order.
	Signatures []string
}
