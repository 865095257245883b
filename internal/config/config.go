// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the webhook intake server will bind to.
	ServerHost string
	// ServerPort is the port number the webhook intake server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// PlatformBaseURL is the base URL of the platform REST API.
	PlatformBaseURL string
	// PlatformTokenURL is the OAuth2 token endpoint for the client-credentials exchange.
	PlatformTokenURL string
	// PlatformClientID is the OAuth2 client identifier.
	PlatformClientID string
	// PlatformClientSecret is the OAuth2 client secret. Ignored when
	// PlatformClientSecretEncrypted is set.
	PlatformClientSecret string
	// PlatformClientSecretEncrypted is an optional base64 ciphertext of the
	// client secret, decrypted at startup via SecretKeeperURI.
	PlatformClientSecretEncrypted string
	// PlatformScope is the OAuth2 scope requested during the exchange.
	PlatformScope string
	// PlatformTimeout bounds every platform HTTP call, including the token
	// exchange. Keeping this bounded prevents the refresh guard from being
	// held indefinitely.
	PlatformTimeout time.Duration

	// TokenRefreshMargin is subtracted from a credential's expiry when judging
	// freshness, forcing refresh before the token expires mid-request.
	TokenRefreshMargin time.Duration

	// WebhookSecret is the signing secret used to verify inbound webhooks.
	WebhookSecret string
	// WebhookTolerance is the allowed skew between the signed timestamp and
	// the local clock before a payload is rejected as a replay.
	WebhookTolerance time.Duration

	// SecretKeeperURI is an optional gocloud.dev secrets keeper URI
	// (e.g., "base64key://...", "hashivault://keys/meshpay") used to decrypt
	// PlatformClientSecretEncrypted.
	SecretKeeperURI string

	// RateLimitEnabled indicates whether rate limiting for the intake endpoint is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per source IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for intake rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Platform API
		PlatformBaseURL:               env.GetString("PLATFORM_BASE_URL", "https://api.meshpay.example.com"),
		PlatformTokenURL:              env.GetString("PLATFORM_TOKEN_URL", "https://auth.meshpay.example.com/tokens"),
		PlatformClientID:              env.GetString("PLATFORM_CLIENT_ID", ""),
		PlatformClientSecret:          env.GetString("PLATFORM_CLIENT_SECRET", ""),
		PlatformClientSecretEncrypted: env.GetString("PLATFORM_CLIENT_SECRET_ENCRYPTED", ""),
		PlatformScope:                 env.GetString("PLATFORM_SCOPE", "im_platform"),
		PlatformTimeout:               env.GetDuration("PLATFORM_TIMEOUT_SECONDS", 30, time.Second),

		// Credential lifecycle
		TokenRefreshMargin: env.GetDuration("TOKEN_REFRESH_MARGIN_SECONDS", 60, time.Second),

		// Webhooks
		WebhookSecret:    env.GetString("WEBHOOK_SECRET", ""),
		WebhookTolerance: env.GetDuration("WEBHOOK_TOLERANCE_SECONDS", 300, time.Second),

		// Secret keeper
		SecretKeeperURI: env.GetString("SECRET_KEEPER_URI", ""),

		// Rate Limiting (intake endpoint, IP-based)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 50.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 100),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "meshpay"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Shutdown
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 30, time.Second),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
