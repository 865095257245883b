package usecase

import (
	"context"
	"time"

	"github.com/meshpay/meshpay-go/internal/metrics"
)

// webhookMetricsDecorator wraps a WebhookUseCase with business metrics.
type webhookMetricsDecorator struct {
	next            WebhookUseCase
	businessMetrics metrics.BusinessMetrics
}

// NewWebhookMetricsDecorator wraps the use case with operation count and
// duration metrics under the "webhooks" domain.
func NewWebhookMetricsDecorator(
	next WebhookUseCase,
	businessMetrics metrics.BusinessMetrics,
) WebhookUseCase {
	return &webhookMetricsDecorator{
		next:            next,
		businessMetrics: businessMetrics,
	}
}

// Verify delegates and records the outcome. Valid and invalid signatures are
// tracked as distinct statuses so a spike of rejects is visible even though a
// mismatch is not an error.
func (d *webhookMetricsDecorator) Verify(ctx context.Context, payload []byte, header string) (bool, error) {
	start := time.Now()

	ok, err := d.next.Verify(ctx, payload, header)

	status := "valid"
	switch {
	case err != nil:
		status = "error"
	case !ok:
		status = "invalid"
	}
	d.businessMetrics.RecordOperation(ctx, "webhooks", "verify", status)
	d.businessMetrics.RecordDuration(ctx, "webhooks", "verify", time.Since(start), status)

	return ok, err
}

// RegisterSecret delegates and records the outcome.
func (d *webhookMetricsDecorator) RegisterSecret(ctx context.Context, secret string) error {
	start := time.Now()

	err := d.next.RegisterSecret(ctx, secret)

	status := "success"
	if err != nil {
		status = "error"
	}
	d.businessMetrics.RecordOperation(ctx, "webhooks", "register_secret", status)
	d.businessMetrics.RecordDuration(ctx, "webhooks", "register_secret", time.Since(start), status)

	return err
}
