package infrastructure

import (
	"context"
	"testing"
	"time"

	auditApp "github.com/revenia/revenia/internal/audit/application"
	billingdomain "github.com/revenia/revenia/internal/billing/domain"
	"github.com/revenia/revenia/internal/shared/infrastructure/eventbus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubscription() *billingdomain.Subscription {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &billingdomain.Subscription{
		SubscriptionID:    "sub-1",
		UserID:            "user-1",
		PlanID:            "plan-1",
		Status:            billingdomain.SubscriptionPendingPayment,
		StartDate:         start,
		CurrentCycleStart: start,
		CurrentCycleEnd:   start.Add(30 * 24 * time.Hour),
		CycleDuration:     30 * 24 * time.Hour,
	}
}

func TestBillingEventConsumer(t *testing.T) {
	repo := NewMemoryRepository()
	consumer := NewBillingEventConsumer(repo)

	assert.ElementsMatch(t, []string{
		"billing.subscription.created",
		"billing.subscription.status_changed",
		"billing.invoice.created",
		"billing.invoice.status_changed",
	}, consumer.EventTypes())

	event := billingdomain.NewSubscriptionCreated(testSubscription())
	envelope, err := eventbus.NewConsumedEvent(&event)
	require.NoError(t, err)
	require.NoError(t, consumer.Handle(context.Background(), envelope))

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, event.EventID(), record.EventID)
	assert.Equal(t, "sub-1", record.AggregateID)
	assert.Equal(t, "billing.subscription.created", record.EventType)
	assert.JSONEq(t, string(envelope.Payload), string(record.Payload))
	assert.False(t, record.RecordedAt.IsZero())
}

func TestAuditFlowThroughBus(t *testing.T) {
	repo := NewMemoryRepository()
	bus := eventbus.NewInProcessEventBus(nil)
	bus.RegisterConsumer(NewBillingEventConsumer(repo))
	service := auditApp.NewService(repo)

	sub := testSubscription()
	created := billingdomain.NewSubscriptionCreated(sub)
	require.NoError(t, bus.PublishDomainEvent(context.Background(), &created))

	invoice := &billingdomain.Invoice{
		InvoiceID:     "inv-1",
		UserID:        "user-1",
		PlanID:        "plan-1",
		BillingPeriod: sub.CurrentPeriod(),
		Amount:        decimal.RequireFromString("29.90"),
		Status:        billingdomain.InvoiceAwaitingPayment,
	}
	invoiceCreated := billingdomain.NewInvoiceCreated(invoice)
	require.NoError(t, bus.PublishDomainEvent(context.Background(), &invoiceCreated))

	recent, err := service.RecentEvents(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first.
	assert.Equal(t, "billing.invoice.created", recent[0].EventType)

	byType, err := service.EventsByType(context.Background(), "billing.subscription.created", 10)
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	counts, err := service.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"billing.subscription.created": 1,
		"billing.invoice.created":      1,
	}, counts)
}
