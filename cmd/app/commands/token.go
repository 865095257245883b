package commands

import (
	"context"
	"fmt"

	"github.com/meshpay/meshpay-go/internal/app"
	"github.com/meshpay/meshpay-go/internal/config"
)

// RunToken performs a client-credentials exchange and prints the resulting
// Authorization header value. Useful for smoke-testing platform credentials
// from the command line.
func RunToken(ctx context.Context, io IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	credentialUseCase, err := container.CredentialUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize credential use case: %w", err)
	}

	bearer, err := credentialUseCase.BearerToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain bearer token: %w", err)
	}

	fmt.Fprintln(io.Writer, bearer)
	return nil
}
