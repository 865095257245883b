package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/meshpay/meshpay-go/internal/config"
	"github.com/meshpay/meshpay-go/internal/metrics"
	webhooksHTTP "github.com/meshpay/meshpay-go/internal/webhooks/http"
	webhooksUseCase "github.com/meshpay/meshpay-go/internal/webhooks/usecase"
)

// Server is the webhook intake gateway HTTP server.
type Server struct {
	server       *http.Server
	logger       *slog.Logger
	shuttingDown atomic.Bool
}

// NewServer creates the intake gateway server with all routes and middleware
// wired. Webhook deliveries are authenticated by the signature verification
// middleware before they reach the intake handler.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	webhookUseCase webhooksUseCase.WebhookUseCase,
	metricsProvider *metrics.Provider,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	s := &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	// Health and readiness endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if s.shuttingDown.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Webhook intake
	intake := router.Group("/v1")
	if cfg.RateLimitEnabled {
		intake.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}
	webhookHandler := webhooksHTTP.NewWebhookHandler(logger)
	intake.POST(
		"/webhooks",
		webhooksHTTP.SignatureVerificationMiddleware(webhookUseCase, logger),
		webhookHandler.IntakeHandler,
	)

	return s
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.shuttingDown.Store(true)
	return s.server.Shutdown(ctx)
}
