package domain

import "context"

// PlanRepository defines access to the plan catalog. FindByID fails with
// ErrPlanNotFound when the plan is absent.
type PlanRepository interface {
	Save(ctx context.Context, plan *Plan) error
	FindByID(ctx context.Context, planID string) (*Plan, error)
	ListActive(ctx context.Context) ([]*Plan, error)
}

// PlanAssignmentRepository defines access to plan assignments.
// FindCurrentByUser returns nil when the user has no assignment.
type PlanAssignmentRepository interface {
	Assign(ctx context.Context, assignment *PlanAssignment) error
	ChangePlan(ctx context.Context, userID string, assignment *PlanAssignment) error
	FindCurrentByUser(ctx context.Context, userID string) (*PlanAssignment, error)
}
