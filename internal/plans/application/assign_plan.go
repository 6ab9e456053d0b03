package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/revenia/revenia/internal/plans/domain"
)

// AssignPlanCommand contains the data needed to put a user on a plan.
type AssignPlanCommand struct {
	UserID  string
	PlanID  string
	Now     time.Time
	Context map[string]string
}

// AssignPlanHandler handles the AssignPlanCommand.
type AssignPlanHandler struct {
	plans       domain.PlanRepository
	assignments domain.PlanAssignmentRepository
}

// NewAssignPlanHandler creates a new AssignPlanHandler.
func NewAssignPlanHandler(plans domain.PlanRepository, assignments domain.PlanAssignmentRepository) *AssignPlanHandler {
	return &AssignPlanHandler{plans: plans, assignments: assignments}
}

// Handle assigns an active plan to the user.
func (h *AssignPlanHandler) Handle(ctx context.Context, cmd AssignPlanCommand) (*domain.PlanAssignment, error) {
	plan, err := h.plans.FindByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive() {
		return nil, domain.ErrPlanNotActive
	}

	assignment := &domain.PlanAssignment{
		AssignmentID: uuid.NewString(),
		UserID:       cmd.UserID,
		PlanID:       plan.PlanID,
		AssignedAt:   cmd.Now,
		Roles:        append([]string(nil), plan.MappedRoles...),
		Context:      cmd.Context,
	}
	if err := h.assignments.Assign(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}
