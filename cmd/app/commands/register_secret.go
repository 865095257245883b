package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meshpay/meshpay-go/internal/app"
	"github.com/meshpay/meshpay-go/internal/config"
)

// RunRegisterSecret registers a webhook signing secret with the platform.
// The secret must satisfy the registration policy (at least 32 printable
// ASCII characters); policy violations are reported before any network call.
func RunRegisterSecret(ctx context.Context, secret string, io IOTuple) error {
	if secret == "" {
		return fmt.Errorf("--secret is required")
	}

	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	webhookUseCase, err := container.WebhookUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize webhook use case: %w", err)
	}

	if err := webhookUseCase.RegisterSecret(ctx, secret); err != nil {
		return fmt.Errorf("failed to register secret: %w", err)
	}

	logger.Info("signing secret registered", slog.Int("secret_length", len(secret)))
	fmt.Fprintln(io.Writer, "signing secret registered")
	fmt.Fprintln(io.Writer)
	fmt.Fprintln(io.Writer, "# Update your environment to verify deliveries with the new secret:")
	fmt.Fprintf(io.Writer, "WEBHOOK_SECRET=\"%s\"\n", secret)
	return nil
}
