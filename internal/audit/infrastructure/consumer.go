package infrastructure

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/revenia/revenia/internal/audit/domain"
	billingdomain "github.com/revenia/revenia/internal/billing/domain"
	"github.com/revenia/revenia/internal/shared/infrastructure/eventbus"
)

// BillingEventConsumer appends every billing audit event to the audit log.
type BillingEventConsumer struct {
	records domain.Repository
}

// NewBillingEventConsumer creates a consumer writing to the given log.
func NewBillingEventConsumer(records domain.Repository) *BillingEventConsumer {
	return &BillingEventConsumer{records: records}
}

// EventTypes returns the routing keys this consumer handles.
func (c *BillingEventConsumer) EventTypes() []string {
	return []string{
		billingdomain.RoutingKeySubscriptionCreated,
		billingdomain.RoutingKeySubscriptionStatusChanged,
		billingdomain.RoutingKeyInvoiceCreated,
		billingdomain.RoutingKeyInvoiceStatusChanged,
	}
}

// Handle appends the consumed event to the audit log.
func (c *BillingEventConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	record := &domain.Record{
		ID:            uuid.New(),
		EventID:       event.EventID,
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		EventType:     event.RoutingKey,
		OccurredAt:    event.OccurredAt,
		RecordedAt:    time.Now().UTC(),
		UserID:        event.Metadata.UserID,
		Payload:       event.Payload,
	}
	return c.records.Append(ctx, record)
}
