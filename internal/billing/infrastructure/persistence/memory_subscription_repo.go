package persistence

import (
	"context"
	"sync"

	"github.com/revenia/revenia/internal/billing/domain"
)

// MemorySubscriptionRepository is an in-memory SubscriptionRepository used in
// local mode and tests. Entities are stored by value so callers never alias
// repository state.
type MemorySubscriptionRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Subscription
}

// NewMemorySubscriptionRepository creates an empty repository.
func NewMemorySubscriptionRepository() *MemorySubscriptionRepository {
	return &MemorySubscriptionRepository{byID: make(map[string]domain.Subscription)}
}

// Add stores a new subscription.
func (r *MemorySubscriptionRepository) Add(_ context.Context, subscription *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[subscription.SubscriptionID] = *subscription
	return nil
}

// Get returns the subscription with the given id.
func (r *MemorySubscriptionRepository) Get(_ context.Context, subscriptionID string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subscription, ok := r.byID[subscriptionID]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	return &subscription, nil
}

// Update replaces the stored subscription.
func (r *MemorySubscriptionRepository) Update(_ context.Context, subscription *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[subscription.SubscriptionID]; !ok {
		return domain.ErrSubscriptionNotFound
	}
	r.byID[subscription.SubscriptionID] = *subscription
	return nil
}

// FindByUser returns the user's subscription, or nil when none exists.
func (r *MemorySubscriptionRepository) FindByUser(_ context.Context, userID string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, subscription := range r.byID {
		if subscription.UserID == userID {
			s := subscription
			return &s, nil
		}
	}
	return nil, nil
}

// GetByUserAndPlan returns the subscription matching user and plan, or nil.
func (r *MemorySubscriptionRepository) GetByUserAndPlan(_ context.Context, userID, planID string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, subscription := range r.byID {
		if subscription.UserID == userID && subscription.PlanID == planID {
			s := subscription
			return &s, nil
		}
	}
	return nil, nil
}
