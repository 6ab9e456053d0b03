package persistence

import (
	"context"
	"sync"

	"github.com/revenia/revenia/internal/plans/domain"
)

// MemoryAssignmentRepository keeps each user's current plan assignment in
// memory. History lives in the audit log, not here.
type MemoryAssignmentRepository struct {
	mu     sync.RWMutex
	byUser map[string]domain.PlanAssignment
}

// NewMemoryAssignmentRepository creates an empty repository.
func NewMemoryAssignmentRepository() *MemoryAssignmentRepository {
	return &MemoryAssignmentRepository{byUser: make(map[string]domain.PlanAssignment)}
}

// Assign stores the user's assignment.
func (r *MemoryAssignmentRepository) Assign(_ context.Context, assignment *domain.PlanAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[assignment.UserID] = *assignment
	return nil
}

// ChangePlan replaces the user's assignment.
func (r *MemoryAssignmentRepository) ChangePlan(_ context.Context, userID string, assignment *domain.PlanAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[userID] = *assignment
	return nil
}

// FindCurrentByUser returns the user's assignment, or nil when none exists.
func (r *MemoryAssignmentRepository) FindCurrentByUser(_ context.Context, userID string) (*domain.PlanAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	assignment, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	return &assignment, nil
}
