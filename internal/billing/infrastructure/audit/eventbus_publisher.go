// Package audit adapts the billing engine's audit publisher contract onto
// the event bus and outbox infrastructure.
package audit

import (
	"context"
	"encoding/json"

	"github.com/revenia/revenia/internal/shared/domain"
	"github.com/revenia/revenia/internal/shared/infrastructure/eventbus"
)

// EventBusPublisher publishes audit events straight onto an event bus
// publisher (in-process in local mode, RabbitMQ in server mode). Publish
// failures surface to the engine caller synchronously.
type EventBusPublisher struct {
	bus eventbus.Publisher
}

// NewEventBusPublisher creates a publisher backed by the given bus.
func NewEventBusPublisher(bus eventbus.Publisher) *EventBusPublisher {
	return &EventBusPublisher{bus: bus}
}

// Publish wraps the event in its bus envelope and sends it.
func (p *EventBusPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	envelope, err := eventbus.NewConsumedEvent(event)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.bus.Publish(ctx, event.RoutingKey(), payload)
}
