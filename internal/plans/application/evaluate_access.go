package application

import (
	"context"
	"time"

	billingapp "github.com/revenia/revenia/internal/billing/application"
	"github.com/revenia/revenia/internal/plans/domain"
)

// AccessEvaluation joins the billing access decision with the roles granted
// by the user's current plan assignment. Role strings are opaque here; the
// authorization module interprets them.
type AccessEvaluation struct {
	Decision billingapp.AccessDecision
	PlanID   string
	Roles    []string
}

// EvaluateAccessHandler derives a combined access view for a user.
type EvaluateAccessHandler struct {
	engine      *billingapp.Engine
	assignments domain.PlanAssignmentRepository
}

// NewEvaluateAccessHandler creates a new EvaluateAccessHandler.
func NewEvaluateAccessHandler(engine *billingapp.Engine, assignments domain.PlanAssignmentRepository) *EvaluateAccessHandler {
	return &EvaluateAccessHandler{engine: engine, assignments: assignments}
}

// Handle evaluates access for the user at now. Roles are only attached when
// billing allows access.
func (h *EvaluateAccessHandler) Handle(ctx context.Context, userID string, now time.Time) (*AccessEvaluation, error) {
	decision, err := h.engine.AccessDecision(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	evaluation := &AccessEvaluation{Decision: decision, PlanID: decision.PlanID}
	if !decision.Allowed {
		return evaluation, nil
	}

	assignment, err := h.assignments.FindCurrentByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if assignment != nil {
		evaluation.PlanID = assignment.PlanID
		evaluation.Roles = append([]string(nil), assignment.Roles...)
	}
	return evaluation, nil
}
