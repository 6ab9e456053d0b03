package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscription(status SubscriptionStatus) *Subscription {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cycle := 30 * 24 * time.Hour
	return &Subscription{
		SubscriptionID:    "sub-1",
		UserID:            "user-1",
		PlanID:            "plan-1",
		Status:            status,
		StartDate:         start,
		CurrentCycleStart: start,
		CurrentCycleEnd:   start.Add(cycle),
		CycleDuration:     cycle,
	}
}

func TestSubscriptionTransitionTo(t *testing.T) {
	t.Run("legal transition updates status", func(t *testing.T) {
		sub := newTestSubscription(SubscriptionPendingPayment)
		require.NoError(t, sub.TransitionTo(SubscriptionActive))
		assert.Equal(t, SubscriptionActive, sub.Status)
	})

	t.Run("illegal transition leaves status unchanged", func(t *testing.T) {
		sub := newTestSubscription(SubscriptionSuspended)
		err := sub.TransitionTo(SubscriptionActive)
		require.Error(t, err)
		assert.Equal(t, SubscriptionSuspended, sub.Status)

		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, SubscriptionSuspended.String(), transitionErr.From)
		assert.Equal(t, SubscriptionActive.String(), transitionErr.To)
		assert.True(t, errors.Is(err, ErrInvalidTransition))
	})

	t.Run("terminal status rejects everything", func(t *testing.T) {
		sub := newTestSubscription(SubscriptionCanceled)
		assert.Error(t, sub.TransitionTo(SubscriptionActive))
		assert.Error(t, sub.TransitionTo(SubscriptionPendingPayment))
	})
}

func TestSubscriptionAdvanceCycle(t *testing.T) {
	sub := newTestSubscription(SubscriptionActive)
	firstStart := sub.CurrentCycleStart
	firstEnd := sub.CurrentCycleEnd

	elapsed := sub.AdvanceCycle()

	assert.Equal(t, firstStart, elapsed.Start)
	assert.Equal(t, firstEnd, elapsed.End)
	assert.Equal(t, firstEnd, sub.CurrentCycleStart)
	assert.Equal(t, firstEnd.Add(sub.CycleDuration), sub.CurrentCycleEnd)
}

func TestSubscriptionGrace(t *testing.T) {
	sub := newTestSubscription(SubscriptionPendingPayment)
	deadline := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	t.Run("no deadline means not within grace", func(t *testing.T) {
		assert.False(t, sub.IsWithinGrace(deadline))
	})

	t.Run("deadline is inclusive", func(t *testing.T) {
		sub.GrantGrace(deadline)
		assert.True(t, sub.IsWithinGrace(deadline.Add(-time.Hour)))
		assert.True(t, sub.IsWithinGrace(deadline))
		assert.False(t, sub.IsWithinGrace(deadline.Add(time.Nanosecond)))
	})

	t.Run("clear removes the deadline", func(t *testing.T) {
		sub.ClearGrace()
		assert.Nil(t, sub.GracePeriodEnd)
		assert.False(t, sub.IsWithinGrace(deadline.Add(-time.Hour)))
	})
}

func TestBillingPeriod(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(30 * 24 * time.Hour)
	period := NewBillingPeriod(start, end)

	// Half-open: start inclusive, end exclusive.
	assert.True(t, period.Contains(start))
	assert.True(t, period.Contains(end.Add(-time.Nanosecond)))
	assert.False(t, period.Contains(end))
	assert.False(t, period.Contains(start.Add(-time.Nanosecond)))
	assert.True(t, period.IsValid())
	assert.False(t, NewBillingPeriod(end, start).IsValid())
}

func TestInvoiceTransitionTo(t *testing.T) {
	invoice := &Invoice{
		InvoiceID: "inv-1",
		UserID:    "user-1",
		PlanID:    "plan-1",
		Status:    InvoiceAwaitingPayment,
	}

	require.NoError(t, invoice.TransitionTo(InvoicePaid))
	assert.Equal(t, InvoicePaid, invoice.Status)

	err := invoice.TransitionTo(InvoiceFailed)
	require.Error(t, err)
	assert.Equal(t, InvoicePaid, invoice.Status)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}
