package audit

import (
	"context"

	"github.com/revenia/revenia/internal/shared/domain"
	"github.com/revenia/revenia/internal/shared/infrastructure/outbox"
)

// OutboxPublisher stores audit events in the outbox instead of publishing
// them directly. The worker's processor delivers them to the broker with
// retries; from the engine's perspective the publish succeeds once the
// message is written.
type OutboxPublisher struct {
	repo outbox.Repository
}

// NewOutboxPublisher creates an outbox-backed audit publisher.
func NewOutboxPublisher(repo outbox.Repository) *OutboxPublisher {
	return &OutboxPublisher{repo: repo}
}

// Publish writes the event to the outbox.
func (p *OutboxPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	msg, err := outbox.NewMessage(event)
	if err != nil {
		return err
	}
	return p.repo.Save(ctx, msg)
}
