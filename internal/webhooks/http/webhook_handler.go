package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/meshpay/meshpay-go/internal/errors"
	"github.com/meshpay/meshpay-go/internal/httputil"
)

// WebhookHandler handles verified webhook deliveries. By the time a request
// reaches it, SignatureVerificationMiddleware has already authenticated the
// payload.
type WebhookHandler struct {
	logger *slog.Logger
}

// NewWebhookHandler creates a new webhook intake handler.
func NewWebhookHandler(logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{logger: logger}
}

// intakeEvent is the envelope the platform delivers. Only the event name is
// inspected here; the payload is logged and acknowledged.
type intakeEvent struct {
	Event string `json:"event"`
}

// IntakeHandler acknowledges a verified webhook delivery.
// POST /v1/webhooks - Requires a valid signature.
// Returns 204 No Content on success.
func (h *WebhookHandler) IntakeHandler(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.Wrap(err, "failed to read request body"), h.logger)
		return
	}

	var event intakeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		httputil.HandleBadRequestGin(c, apperrors.Wrap(err, "failed to decode event"), h.logger)
		return
	}

	h.logger.Info("webhook received",
		slog.String("event", event.Event),
		slog.Int("payload_bytes", len(payload)))

	c.Status(http.StatusNoContent)
}
