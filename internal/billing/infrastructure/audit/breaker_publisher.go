package audit

import (
	"context"
	"log/slog"
	"time"

	billingdomain "github.com/revenia/revenia/internal/billing/domain"
	"github.com/revenia/revenia/internal/shared/domain"
	"github.com/sony/gobreaker/v2"
)

// BreakerPublisher wraps an audit publisher in a circuit breaker so a dead
// sink fails fast instead of stalling every billing operation on broker
// timeouts. Errors still propagate to the caller in either case.
type BreakerPublisher struct {
	inner   billingdomain.AuditPublisher
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewBreakerPublisher wraps the given publisher.
func NewBreakerPublisher(inner billingdomain.AuditPublisher, logger *slog.Logger) *BreakerPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:    "audit-publisher",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("audit publisher breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &BreakerPublisher{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// Publish sends the event through the breaker.
func (p *BreakerPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.inner.Publish(ctx, event)
	})
	return err
}
