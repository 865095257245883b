package usecase

import (
	"context"
	"time"

	"github.com/meshpay/meshpay-go/internal/metrics"
)

// credentialMetricsDecorator wraps a CredentialUseCase with business metrics.
type credentialMetricsDecorator struct {
	next            CredentialUseCase
	businessMetrics metrics.BusinessMetrics
}

// NewCredentialMetricsDecorator wraps the use case with operation count and
// duration metrics under the "auth" domain.
func NewCredentialMetricsDecorator(
	next CredentialUseCase,
	businessMetrics metrics.BusinessMetrics,
) CredentialUseCase {
	return &credentialMetricsDecorator{
		next:            next,
		businessMetrics: businessMetrics,
	}
}

// BearerToken delegates to the wrapped use case and records the outcome.
func (d *credentialMetricsDecorator) BearerToken(ctx context.Context) (string, error) {
	start := time.Now()

	bearer, err := d.next.BearerToken(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}
	d.businessMetrics.RecordOperation(ctx, "auth", "bearer_token", status)
	d.businessMetrics.RecordDuration(ctx, "auth", "bearer_token", time.Since(start), status)

	return bearer, err
}
