package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/revenia/revenia/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	mu       sync.Mutex
	messages []*Message
	nextID   int64
}

func (r *fakeRepository) Save(_ context.Context, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	msg.ID = r.nextID
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	for _, msg := range msgs {
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepository) GetUnpublished(_ context.Context, limit int) ([]*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var unpublished []*Message
	for _, msg := range r.messages {
		if msg.PublishedAt != nil || msg.DeadLetteredAt != nil {
			continue
		}
		if msg.NextRetryAt != nil && msg.NextRetryAt.After(now) {
			continue
		}
		unpublished = append(unpublished, msg)
		if len(unpublished) >= limit {
			break
		}
	}
	return unpublished, nil
}

func (r *fakeRepository) MarkPublished(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, msg := range r.messages {
		if msg.ID == id {
			msg.PublishedAt = &now
			return nil
		}
	}
	return errors.New("message not found")
}

func (r *fakeRepository) MarkFailed(_ context.Context, id int64, errStr string, nextRetryAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages {
		if msg.ID == id {
			msg.RetryCount++
			msg.LastError = &errStr
			msg.NextRetryAt = &nextRetryAt
			return nil
		}
	}
	return errors.New("message not found")
}

func (r *fakeRepository) MarkDead(_ context.Context, id int64, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, msg := range r.messages {
		if msg.ID == id {
			msg.DeadLetteredAt = &now
			msg.DeadLetterReason = &reason
			return nil
		}
	}
	return errors.New("message not found")
}

func (r *fakeRepository) DeleteOld(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, routingKey)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type processorTestEvent struct {
	domain.BaseEvent
	Detail string `json:"detail"`
}

func saveTestMessage(t *testing.T, repo *fakeRepository, routingKey string) *Message {
	t.Helper()
	event := &processorTestEvent{
		BaseEvent: domain.NewBaseEvent("agg-1", "test_aggregate", routingKey),
		Detail:    "payload",
	}
	msg, err := NewMessage(event)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), msg))
	return msg
}

func TestProcessorProcessOnce(t *testing.T) {
	t.Run("publishes and marks messages", func(t *testing.T) {
		repo := &fakeRepository{}
		publisher := &fakePublisher{}
		saveTestMessage(t, repo, "test.one")
		saveTestMessage(t, repo, "test.two")

		processor := NewProcessor(repo, publisher, DefaultProcessorConfig(), nil)
		require.NoError(t, processor.ProcessOnce(context.Background()))

		assert.Equal(t, []string{"test.one", "test.two"}, publisher.published)
		for _, msg := range repo.messages {
			assert.True(t, msg.IsPublished())
		}
		assert.Equal(t, uint64(2), processor.GetStats().PublishedCount)
	})

	t.Run("failure schedules a retry", func(t *testing.T) {
		repo := &fakeRepository{}
		publisher := &fakePublisher{err: errors.New("broker down")}
		msg := saveTestMessage(t, repo, "test.one")

		processor := NewProcessor(repo, publisher, DefaultProcessorConfig(), nil)
		require.NoError(t, processor.ProcessOnce(context.Background()))

		assert.False(t, msg.IsPublished())
		assert.Equal(t, 1, msg.RetryCount)
		require.NotNil(t, msg.NextRetryAt)
		assert.True(t, msg.NextRetryAt.After(time.Now()))
		assert.Equal(t, uint64(1), processor.GetStats().FailedCount)
		assert.Equal(t, "broker down", processor.GetStats().LastError)
	})

	t.Run("exhausted retries dead-letter the message", func(t *testing.T) {
		repo := &fakeRepository{}
		publisher := &fakePublisher{err: errors.New("broker down")}
		msg := saveTestMessage(t, repo, "test.one")
		msg.RetryCount = 4

		config := DefaultProcessorConfig()
		config.MaxRetries = 5
		processor := NewProcessor(repo, publisher, config, nil)
		require.NoError(t, processor.ProcessOnce(context.Background()))

		require.NotNil(t, msg.DeadLetteredAt)
		assert.Equal(t, "broker down", *msg.DeadLetterReason)
		assert.Equal(t, uint64(1), processor.GetStats().DeadCount)
	})

	t.Run("dead-lettered messages are not retried", func(t *testing.T) {
		repo := &fakeRepository{}
		publisher := &fakePublisher{}
		msg := saveTestMessage(t, repo, "test.one")
		now := time.Now()
		msg.DeadLetteredAt = &now

		processor := NewProcessor(repo, publisher, DefaultProcessorConfig(), nil)
		require.NoError(t, processor.ProcessOnce(context.Background()))
		assert.Empty(t, publisher.published)
	})
}

func TestProcessorStartStop(t *testing.T) {
	repo := &fakeRepository{}
	publisher := &fakePublisher{}
	saveTestMessage(t, repo, "test.one")

	config := DefaultProcessorConfig()
	config.PollInterval = 5 * time.Millisecond
	processor := NewProcessor(repo, publisher, config, nil)

	require.NoError(t, processor.Start(context.Background()))
	assert.True(t, processor.IsRunning())

	assert.Eventually(t, func() bool {
		return processor.GetStats().PublishedCount == 1
	}, time.Second, 5*time.Millisecond)

	processor.Stop()
	assert.False(t, processor.IsRunning())
}

func TestRetryBackoff(t *testing.T) {
	config := DefaultProcessorConfig()
	processor := NewProcessor(&fakeRepository{}, &fakePublisher{}, config, nil)

	assert.Equal(t, time.Second, processor.retryBackoff(1))
	assert.Equal(t, 2*time.Second, processor.retryBackoff(2))
	assert.Equal(t, 4*time.Second, processor.retryBackoff(3))
	assert.Equal(t, time.Minute, processor.retryBackoff(20))
}

func TestMessage(t *testing.T) {
	event := &processorTestEvent{
		BaseEvent: domain.NewBaseEvent("agg-9", "test_aggregate", "test.routing"),
		Detail:    "payload",
	}
	msg, err := NewMessage(event)
	require.NoError(t, err)

	assert.Equal(t, event.EventID(), msg.EventID)
	assert.Equal(t, "agg-9", msg.AggregateID)
	assert.Equal(t, "test.routing", msg.RoutingKey)
	assert.Equal(t, "test.routing", msg.EventType)
	assert.False(t, msg.IsPublished())
	assert.True(t, msg.CanRetry(3))
	msg.RetryCount = 3
	assert.False(t, msg.CanRetry(3))
}
