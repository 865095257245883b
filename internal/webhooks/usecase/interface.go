package usecase

import "context"

// SecretRegistrar registers a signing secret with the platform. The wire
// protocol belongs to the transport layer.
type SecretRegistrar interface {
	RegisterSecret(ctx context.Context, secret string) error
}

// WebhookUseCase exposes webhook authentication to the HTTP layer and CLI.
type WebhookUseCase interface {
	// Verify reports whether an inbound payload carries a valid, fresh
	// signature for the configured signing secret. A mismatch is (false, nil).
	Verify(ctx context.Context, payload []byte, header string) (bool, error)

	// RegisterSecret validates the signing-secret policy and registers the
	// secret with the platform.
	RegisterSecret(ctx context.Context, secret string) error
}
