// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authService "github.com/meshpay/meshpay-go/internal/auth/service"
	authUseCase "github.com/meshpay/meshpay-go/internal/auth/usecase"
	"github.com/meshpay/meshpay-go/internal/config"
	"github.com/meshpay/meshpay-go/internal/http"
	"github.com/meshpay/meshpay-go/internal/metrics"
	"github.com/meshpay/meshpay-go/internal/platform"
	webhooksService "github.com/meshpay/meshpay-go/internal/webhooks/service"
	webhooksUseCase "github.com/meshpay/meshpay-go/internal/webhooks/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Services
	signer          webhooksService.Signer
	verifier        webhooksService.Verifier
	credentialCache *authService.CredentialCache

	// Transport
	tokenClient *platform.TokenClient
	apiClient   *platform.APIClient

	// Use Cases
	credentialUseCase authUseCase.CredentialUseCase
	webhookUseCase    webhooksUseCase.WebhookUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	signerInit            sync.Once
	verifierInit          sync.Once
	credentialCacheInit   sync.Once
	tokenClientInit       sync.Once
	apiClientInit         sync.Once
	credentialUseCaseInit sync.Once
	webhookUseCaseInit    sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled it returns a no-op implementation.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Signer returns the webhook signature codec.
func (c *Container) Signer() webhooksService.Signer {
	c.signerInit.Do(func() {
		c.signer = webhooksService.NewSigner()
	})
	return c.signer
}

// Verifier returns the webhook signature verifier.
func (c *Container) Verifier() webhooksService.Verifier {
	c.verifierInit.Do(func() {
		c.verifier = webhooksService.NewVerifier(c.Signer(), c.config.WebhookTolerance)
	})
	return c.verifier
}

// CredentialCache returns the shared credential cache slot.
func (c *Container) CredentialCache() *authService.CredentialCache {
	c.credentialCacheInit.Do(func() {
		c.credentialCache = authService.NewCredentialCache(c.config.TokenRefreshMargin)
	})
	return c.credentialCache
}

// TokenClient returns the OAuth2 token endpoint client.
func (c *Container) TokenClient() *platform.TokenClient {
	c.tokenClientInit.Do(func() {
		c.tokenClient = platform.NewTokenClient(c.config.PlatformTokenURL, c.config.PlatformTimeout)
	})
	return c.tokenClient
}

// CredentialUseCase returns the credential lifecycle manager.
func (c *Container) CredentialUseCase() (authUseCase.CredentialUseCase, error) {
	var err error
	c.credentialUseCaseInit.Do(func() {
		c.credentialUseCase, err = c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// APIClient returns the authenticated platform API client.
func (c *Container) APIClient() (*platform.APIClient, error) {
	var err error
	c.apiClientInit.Do(func() {
		c.apiClient, err = c.initAPIClient()
		if err != nil {
			c.initErrors["apiClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiClient"]; exists {
		return nil, storedErr
	}
	return c.apiClient, nil
}

// WebhookUseCase returns the webhook verification use case.
func (c *Container) WebhookUseCase() (webhooksUseCase.WebhookUseCase, error) {
	var err error
	c.webhookUseCaseInit.Do(func() {
		c.webhookUseCase, err = c.initWebhookUseCase()
		if err != nil {
			c.initErrors["webhookUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookUseCase"]; exists {
		return nil, storedErr
	}
	return c.webhookUseCase, nil
}

// HTTPServer returns the intake gateway HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Flush metrics if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// resolveClientSecret returns the plaintext OAuth2 client secret, decrypting
// the configured ciphertext through the secret keeper when one is set.
func (c *Container) resolveClientSecret(ctx context.Context) (string, error) {
	if c.config.PlatformClientSecretEncrypted == "" {
		return c.config.PlatformClientSecret, nil
	}
	if c.config.SecretKeeperURI == "" {
		return "", fmt.Errorf("PLATFORM_CLIENT_SECRET_ENCRYPTED is set but SECRET_KEEPER_URI is empty")
	}
	return platform.DecryptClientSecret(
		ctx,
		c.config.SecretKeeperURI,
		c.config.PlatformClientSecretEncrypted,
	)
}

// initCredentialUseCase creates the credential lifecycle manager with all its dependencies.
func (c *Container) initCredentialUseCase() (authUseCase.CredentialUseCase, error) {
	clientSecret, err := c.resolveClientSecret(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client secret: %w", err)
	}

	useCase := authUseCase.NewCredentialUseCase(
		c.CredentialCache(),
		c.TokenClient(),
		c.config.PlatformClientID,
		clientSecret,
		c.config.PlatformScope,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
	}

	return authUseCase.NewCredentialMetricsDecorator(useCase, businessMetrics), nil
}

// initAPIClient creates the authenticated platform API client.
func (c *Container) initAPIClient() (*platform.APIClient, error) {
	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for api client: %w", err)
	}

	return platform.NewAPIClient(
		c.config.PlatformBaseURL,
		c.config.PlatformTimeout,
		credentialUseCase,
	), nil
}

// initWebhookUseCase creates the webhook use case with all its dependencies.
func (c *Container) initWebhookUseCase() (webhooksUseCase.WebhookUseCase, error) {
	apiClient, err := c.APIClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get api client for webhook use case: %w", err)
	}

	useCase := webhooksUseCase.NewWebhookUseCase(
		c.Verifier(),
		apiClient,
		c.config.WebhookSecret,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for webhook use case: %w", err)
	}

	return webhooksUseCase.NewWebhookMetricsDecorator(useCase, businessMetrics), nil
}

// initHTTPServer creates the intake gateway HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	webhookUseCase, err := c.WebhookUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	return http.NewServer(c.config, c.Logger(), webhookUseCase, metricsProvider), nil
}

// initMetricsServer creates the Prometheus metrics server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}
