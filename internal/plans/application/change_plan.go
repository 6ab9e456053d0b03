package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/revenia/revenia/internal/plans/domain"
)

// ChangePlanCommand contains the data needed to move a user to another plan.
type ChangePlanCommand struct {
	UserID    string
	NewPlanID string
	Reason    string
	Now       time.Time
	Context   map[string]string
}

// ChangePlanResult carries the new assignment and, when one existed, the
// assignment it replaced.
type ChangePlanResult struct {
	Assignment *domain.PlanAssignment
	Previous   *domain.PlanAssignment
}

// ChangePlanHandler handles the ChangePlanCommand.
type ChangePlanHandler struct {
	plans       domain.PlanRepository
	assignments domain.PlanAssignmentRepository
}

// NewChangePlanHandler creates a new ChangePlanHandler.
func NewChangePlanHandler(plans domain.PlanRepository, assignments domain.PlanAssignmentRepository) *ChangePlanHandler {
	return &ChangePlanHandler{plans: plans, assignments: assignments}
}

// Handle moves the user onto an active plan, keeping a pointer to the
// replaced assignment in the new assignment's context.
func (h *ChangePlanHandler) Handle(ctx context.Context, cmd ChangePlanCommand) (*ChangePlanResult, error) {
	plan, err := h.plans.FindByID(ctx, cmd.NewPlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive() {
		return nil, domain.ErrPlanNotActive
	}

	previous, err := h.assignments.FindCurrentByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	assignmentContext := make(map[string]string, len(cmd.Context)+2)
	for k, v := range cmd.Context {
		assignmentContext[k] = v
	}
	if cmd.Reason != "" {
		assignmentContext["change_reason"] = cmd.Reason
	}
	if previous != nil {
		assignmentContext["previous_assignment_id"] = previous.AssignmentID
	}

	assignment := &domain.PlanAssignment{
		AssignmentID: uuid.NewString(),
		UserID:       cmd.UserID,
		PlanID:       plan.PlanID,
		AssignedAt:   cmd.Now,
		Roles:        append([]string(nil), plan.MappedRoles...),
		Context:      assignmentContext,
	}
	if err := h.assignments.ChangePlan(ctx, cmd.UserID, assignment); err != nil {
		return nil, err
	}
	return &ChangePlanResult{Assignment: assignment, Previous: previous}, nil
}
