package persistence

import (
	"context"
	"sync"

	"github.com/revenia/revenia/internal/plans/domain"
)

// MemoryPlanRepository is an in-memory plan catalog.
type MemoryPlanRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Plan
}

// NewMemoryPlanRepository creates an empty catalog.
func NewMemoryPlanRepository() *MemoryPlanRepository {
	return &MemoryPlanRepository{byID: make(map[string]domain.Plan)}
}

// Save stores or replaces a plan.
func (r *MemoryPlanRepository) Save(_ context.Context, plan *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[plan.PlanID] = *plan
	return nil
}

// FindByID returns the plan with the given id.
func (r *MemoryPlanRepository) FindByID(_ context.Context, planID string) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.byID[planID]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return &plan, nil
}

// ListActive returns all assignable plans.
func (r *MemoryPlanRepository) ListActive(_ context.Context) ([]*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var plans []*domain.Plan
	for _, plan := range r.byID {
		if plan.IsActive() {
			p := plan
			plans = append(plans, &p)
		}
	}
	return plans, nil
}
