// Package usecase implements business logic orchestration for webhook operations.
package usecase

import (
	"context"

	customValidation "github.com/meshpay/meshpay-go/internal/validation"
	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
	webhooksService "github.com/meshpay/meshpay-go/internal/webhooks/service"
)

// webhookUseCase implements WebhookUseCase for a single signing secret.
type webhookUseCase struct {
	verifier  webhooksService.Verifier
	registrar SecretRegistrar
	secret    string
}

// NewWebhookUseCase creates a WebhookUseCase with the provided dependencies.
// The secret is the integrator's current signing secret; it is held for
// verification only and never logged.
func NewWebhookUseCase(
	verifier webhooksService.Verifier,
	registrar SecretRegistrar,
	secret string,
) WebhookUseCase {
	return &webhookUseCase{
		verifier:  verifier,
		registrar: registrar,
		secret:    secret,
	}
}

// Verify delegates to the signature verifier with the configured secret.
func (u *webhookUseCase) Verify(ctx context.Context, payload []byte, header string) (bool, error) {
	return u.verifier.Verify(payload, header, u.secret)
}

// RegisterSecret enforces the registration policy (at least 32 printable
// ASCII characters) before building the platform request. Verification has no
// such restriction; the policy guards secret creation only.
func (u *webhookUseCase) RegisterSecret(ctx context.Context, secret string) error {
	if err := webhooksDomain.ValidateSigningSecret(secret); err != nil {
		return customValidation.WrapValidationError(err)
	}
	return u.registrar.RegisterSecret(ctx, secret)
}
