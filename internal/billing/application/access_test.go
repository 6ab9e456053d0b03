package application

import (
	"context"
	"testing"
	"time"

	"github.com/revenia/revenia/internal/billing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessDecision(t *testing.T) {
	now := testStart.Add(15 * 24 * time.Hour)
	before := now.Add(-24 * time.Hour)
	after := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		status  domain.SubscriptionStatus
		grace   *time.Time
		allowed bool
		reason  string
	}{
		{"active allows", domain.SubscriptionActive, nil, true, ReasonActive},
		{"pending without grace allows", domain.SubscriptionPendingPayment, nil, true, ReasonAwaitingPayment},
		{"pending with live grace allows", domain.SubscriptionPendingPayment, &after, true, ReasonAwaitingPayment},
		{"pending with expired grace denies", domain.SubscriptionPendingPayment, &before, false, ReasonGracePeriodExpired},
		{"grace within deadline allows", domain.SubscriptionInGracePeriod, &after, true, ReasonGracePeriod},
		{"grace past deadline denies", domain.SubscriptionInGracePeriod, &before, false, ReasonGracePeriodExpired},
		{"suspended denies", domain.SubscriptionSuspended, nil, false, "suspended"},
		{"canceled denies", domain.SubscriptionCanceled, nil, false, "canceled"},
		{"expired denies", domain.SubscriptionExpired, nil, false, "expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			sub := f.subscribe(t, "")
			stored, err := f.subscriptions.Get(context.Background(), sub.SubscriptionID)
			require.NoError(t, err)
			stored.Status = tt.status
			stored.GracePeriodEnd = tt.grace
			require.NoError(t, f.subscriptions.Update(context.Background(), stored))

			decision, err := f.engine.AccessDecision(context.Background(), "user-1", now)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
			assert.Equal(t, sub.SubscriptionID, decision.SubscriptionID)
			assert.Equal(t, "plan-1", decision.PlanID)
		})
	}

	t.Run("no subscription denies", func(t *testing.T) {
		f := newEngineFixture(t)
		decision, err := f.engine.AccessDecision(context.Background(), "nobody", now)
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonNoSubscription, decision.Reason)
		assert.Empty(t, decision.SubscriptionID)
	})

	t.Run("decision is a pure read", func(t *testing.T) {
		f := newEngineFixture(t)
		f.subscribe(t, "")
		published := len(f.audit.events)

		_, err := f.engine.AccessDecision(context.Background(), "user-1", now)
		require.NoError(t, err)
		assert.Len(t, f.audit.events, published)
	})
}
