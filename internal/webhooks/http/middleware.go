// Package http provides the HTTP surface for webhook intake: the signature
// verification middleware and the intake handler.
package http

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/meshpay/meshpay-go/internal/errors"
	"github.com/meshpay/meshpay-go/internal/httputil"
	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
	webhooksUseCase "github.com/meshpay/meshpay-go/internal/webhooks/usecase"
)

// SignatureVerificationMiddleware authenticates inbound webhook deliveries.
//
// The middleware:
// 1. Reads the raw request body (exactly as transmitted, no re-encoding)
// 2. Extracts the signature header from Webhooks-Signature
// 3. Verifies the HMAC signature and timestamp freshness via the use case
// 4. Restores the body so downstream handlers can read it again
//
// Error handling:
//   - Missing or malformed signature header → 422 Unprocessable Entity
//   - Timestamp outside the replay tolerance → 401 Unauthorized
//   - Signature mismatch → 401 Unauthorized
//   - Unreadable body → 400 Bad Request
func SignatureVerificationMiddleware(
	webhookUseCase webhooksUseCase.WebhookUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httputil.HandleBadRequestGin(c, apperrors.Wrap(err, "failed to read request body"), logger)
			c.Abort()
			return
		}
		// Restore the body for downstream handlers
		c.Request.Body = io.NopCloser(bytes.NewReader(payload))

		header := c.GetHeader(webhooksDomain.SignatureHeaderName)

		valid, err := webhookUseCase.Verify(c.Request.Context(), payload, header)
		if err != nil {
			logger.Debug("webhook verification failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}
		if !valid {
			logger.Debug("webhook signature mismatch")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
