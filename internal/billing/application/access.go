package application

import (
	"context"
	"time"

	"github.com/revenia/revenia/internal/billing/domain"
)

// Access decision reasons.
const (
	ReasonNoSubscription     = "no_subscription"
	ReasonActive             = "active"
	ReasonAwaitingPayment    = "awaiting_payment"
	ReasonGracePeriod        = "grace_period"
	ReasonGracePeriodExpired = "grace_period_expired"
)

// AccessDecision is a point-in-time projection of whether a user's
// subscription entitles them to access.
type AccessDecision struct {
	SubscriptionID string
	PlanID         string
	Allowed        bool
	Reason         string
}

// AccessDecision derives an access decision from the user's subscription and
// now. It is a pure read: nothing is mutated and no audit event is emitted.
func (e *Engine) AccessDecision(ctx context.Context, userID string, now time.Time) (AccessDecision, error) {
	subscription, err := e.subscriptions.FindByUser(ctx, userID)
	if err != nil {
		return AccessDecision{}, err
	}
	if subscription == nil {
		return AccessDecision{Allowed: false, Reason: ReasonNoSubscription}, nil
	}

	decision := AccessDecision{
		SubscriptionID: subscription.SubscriptionID,
		PlanID:         subscription.PlanID,
	}

	switch subscription.Status {
	case domain.SubscriptionCanceled, domain.SubscriptionExpired, domain.SubscriptionSuspended:
		decision.Reason = string(subscription.Status)
	case domain.SubscriptionInGracePeriod:
		if subscription.IsWithinGrace(now) {
			decision.Allowed = true
			decision.Reason = ReasonGracePeriod
		} else {
			decision.Reason = ReasonGracePeriodExpired
		}
	case domain.SubscriptionPendingPayment:
		if subscription.GracePeriodEnd != nil && now.After(*subscription.GracePeriodEnd) {
			decision.Reason = ReasonGracePeriodExpired
		} else {
			decision.Allowed = true
			decision.Reason = ReasonAwaitingPayment
		}
	default:
		decision.Allowed = true
		decision.Reason = ReasonActive
	}
	return decision, nil
}
