package domain

import "time"

// Subscription tracks a user's recurring enrollment in a plan. The billing
// engine is the only writer; repositories hand back copies for reading.
//
// Invariants: CurrentCycleStart precedes CurrentCycleEnd, and the cycle span
// equals CycleDuration except transiently while a paid invoice is being
// reconciled. Canceled and expired subscriptions accept no further
// transitions; subscriptions are never deleted.
type Subscription struct {
	SubscriptionID    string
	UserID            string
	PlanID            string
	Status            SubscriptionStatus
	StartDate         time.Time
	CurrentCycleStart time.Time
	CurrentCycleEnd   time.Time
	GracePeriodEnd    *time.Time
	CycleDuration     time.Duration
}

// CurrentPeriod returns the billing period covered by the current cycle.
func (s *Subscription) CurrentPeriod() BillingPeriod {
	return NewBillingPeriod(s.CurrentCycleStart, s.CurrentCycleEnd)
}

// AdvanceCycle rolls the subscription onto the next cycle and returns the
// period that just elapsed.
func (s *Subscription) AdvanceCycle() BillingPeriod {
	previous := s.CurrentPeriod()
	s.CurrentCycleStart = s.CurrentCycleEnd
	s.CurrentCycleEnd = s.CurrentCycleStart.Add(s.CycleDuration)
	return previous
}

// IsWithinGrace reports whether a grace deadline exists and has not passed.
func (s *Subscription) IsWithinGrace(moment time.Time) bool {
	return s.GracePeriodEnd != nil && !moment.After(*s.GracePeriodEnd)
}

// GrantGrace sets the grace deadline.
func (s *Subscription) GrantGrace(end time.Time) {
	s.GracePeriodEnd = &end
}

// ClearGrace removes the grace deadline.
func (s *Subscription) ClearGrace() {
	s.GracePeriodEnd = nil
}

// TransitionTo moves the subscription to a new status after validating the
// change against the transition table. The caller is responsible for
// treating a no-op (same status) as a silent success before calling.
func (s *Subscription) TransitionTo(newStatus SubscriptionStatus) error {
	if !s.Status.CanTransition(newStatus) {
		return newSubscriptionTransitionError(s.SubscriptionID, s.Status, newStatus)
	}
	s.Status = newStatus
	return nil
}
