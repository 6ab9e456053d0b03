package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/revenia/revenia/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	domain.BaseEvent
	Detail string `json:"detail"`
}

func newTestEvent(routingKey string) *testEvent {
	return &testEvent{
		BaseEvent: domain.NewBaseEvent("agg-1", "test_aggregate", routingKey),
		Detail:    "something happened",
	}
}

type recordingConsumer struct {
	types  []string
	events []*ConsumedEvent
	err    error
}

func (c *recordingConsumer) EventTypes() []string { return c.types }

func (c *recordingConsumer) Handle(_ context.Context, event *ConsumedEvent) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, event)
	return nil
}

func TestInProcessEventBusDispatch(t *testing.T) {
	t.Run("delivers to matching consumers", func(t *testing.T) {
		bus := NewInProcessEventBus(nil)
		consumer := &recordingConsumer{types: []string{"test.created"}}
		other := &recordingConsumer{types: []string{"test.deleted"}}
		bus.RegisterConsumer(consumer)
		bus.RegisterConsumer(other)

		event := newTestEvent("test.created")
		require.NoError(t, bus.PublishDomainEvent(context.Background(), event))

		require.Len(t, consumer.events, 1)
		assert.Empty(t, other.events)

		got := consumer.events[0]
		assert.Equal(t, event.EventID(), got.EventID)
		assert.Equal(t, "agg-1", got.AggregateID)
		assert.Equal(t, "test.created", got.RoutingKey)
		assert.JSONEq(t, `{"detail":"something happened"}`, string(got.Payload))
	})

	t.Run("consumer error returns to publisher", func(t *testing.T) {
		bus := NewInProcessEventBus(nil)
		failing := &recordingConsumer{types: []string{"test.created"}, err: errors.New("handler broke")}
		healthy := &recordingConsumer{types: []string{"test.created"}}
		bus.RegisterConsumer(failing)
		bus.RegisterConsumer(healthy)

		err := bus.PublishDomainEvent(context.Background(), newTestEvent("test.created"))
		require.Error(t, err)

		// Remaining consumers still run.
		assert.Len(t, healthy.events, 1)
	})

	t.Run("no consumers is fine", func(t *testing.T) {
		bus := NewInProcessEventBus(nil)
		assert.NoError(t, bus.PublishDomainEvent(context.Background(), newTestEvent("test.orphan")))
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		bus := NewInProcessEventBus(nil)
		err := bus.Publish(context.Background(), "test.created", []byte("not json"))
		assert.Error(t, err)
	})
}

func TestConsumerRegistry(t *testing.T) {
	registry := NewConsumerRegistry(nil)
	consumer := &recordingConsumer{types: []string{"a", "b"}}
	registry.Register(consumer)

	assert.Len(t, registry.GetConsumers("a"), 1)
	assert.Len(t, registry.GetConsumers("b"), 1)
	assert.Empty(t, registry.GetConsumers("c"))
	assert.Equal(t, 1, registry.ConsumerCount())
}
