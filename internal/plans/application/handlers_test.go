package application

import (
	"context"
	"testing"
	"time"

	billingApp "github.com/revenia/revenia/internal/billing/application"
	billingDomain "github.com/revenia/revenia/internal/billing/domain"
	billingPersistence "github.com/revenia/revenia/internal/billing/infrastructure/persistence"
	"github.com/revenia/revenia/internal/plans/domain"
	"github.com/revenia/revenia/internal/plans/infrastructure/persistence"
	shareddomain "github.com/revenia/revenia/internal/shared/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopAudit struct{}

func (noopAudit) Publish(context.Context, shareddomain.DomainEvent) error { return nil }

var assignedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func seedPlan(t *testing.T, plans domain.PlanRepository, status domain.PlanStatus) *domain.Plan {
	t.Helper()
	plan := &domain.Plan{
		PlanID:        "plan-pro",
		Name:          "Pro",
		Status:        status,
		Price:         decimal.RequireFromString("29.90"),
		CycleDuration: 30 * 24 * time.Hour,
		MappedRoles:   []string{"pro", "api"},
	}
	require.NoError(t, plans.Save(context.Background(), plan))
	return plan
}

func TestAssignPlanHandler(t *testing.T) {
	t.Run("assigns an active plan with a role snapshot", func(t *testing.T) {
		plans := persistence.NewMemoryPlanRepository()
		assignments := persistence.NewMemoryAssignmentRepository()
		plan := seedPlan(t, plans, domain.PlanActive)
		handler := NewAssignPlanHandler(plans, assignments)

		assignment, err := handler.Handle(context.Background(), AssignPlanCommand{
			UserID: "user-1",
			PlanID: plan.PlanID,
			Now:    assignedAt,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, assignment.AssignmentID)
		assert.Equal(t, []string{"pro", "api"}, assignment.Roles)

		current, err := assignments.FindCurrentByUser(context.Background(), "user-1")
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, plan.PlanID, current.PlanID)
	})

	t.Run("rejects a retired plan", func(t *testing.T) {
		plans := persistence.NewMemoryPlanRepository()
		assignments := persistence.NewMemoryAssignmentRepository()
		plan := seedPlan(t, plans, domain.PlanRetired)
		handler := NewAssignPlanHandler(plans, assignments)

		_, err := handler.Handle(context.Background(), AssignPlanCommand{UserID: "user-1", PlanID: plan.PlanID, Now: assignedAt})
		assert.ErrorIs(t, err, domain.ErrPlanNotActive)
	})

	t.Run("rejects an unknown plan", func(t *testing.T) {
		handler := NewAssignPlanHandler(persistence.NewMemoryPlanRepository(), persistence.NewMemoryAssignmentRepository())
		_, err := handler.Handle(context.Background(), AssignPlanCommand{UserID: "user-1", PlanID: "missing", Now: assignedAt})
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})
}

func TestChangePlanHandler(t *testing.T) {
	plans := persistence.NewMemoryPlanRepository()
	assignments := persistence.NewMemoryAssignmentRepository()
	seedPlan(t, plans, domain.PlanActive)
	basic := &domain.Plan{
		PlanID:      "plan-basic",
		Name:        "Basic",
		Status:      domain.PlanActive,
		Price:       decimal.RequireFromString("9.90"),
		MappedRoles: []string{"basic"},
	}
	require.NoError(t, plans.Save(context.Background(), basic))

	assigner := NewAssignPlanHandler(plans, assignments)
	_, err := assigner.Handle(context.Background(), AssignPlanCommand{UserID: "user-1", PlanID: "plan-basic", Now: assignedAt})
	require.NoError(t, err)

	handler := NewChangePlanHandler(plans, assignments)
	result, err := handler.Handle(context.Background(), ChangePlanCommand{
		UserID:    "user-1",
		NewPlanID: "plan-pro",
		Reason:    "upgrade",
		Now:       assignedAt.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	require.NotNil(t, result.Previous)
	assert.Equal(t, "plan-basic", result.Previous.PlanID)
	assert.Equal(t, "plan-pro", result.Assignment.PlanID)
	assert.Equal(t, []string{"pro", "api"}, result.Assignment.Roles)
	assert.Equal(t, "upgrade", result.Assignment.Context["change_reason"])
	assert.Equal(t, result.Previous.AssignmentID, result.Assignment.Context["previous_assignment_id"])
}

func TestEvaluateAccessHandler(t *testing.T) {
	newFixture := func(t *testing.T) (*EvaluateAccessHandler, *billingApp.Engine, domain.PlanAssignmentRepository) {
		t.Helper()
		subscriptions := billingPersistence.NewMemorySubscriptionRepository()
		invoices := billingPersistence.NewMemoryInvoiceRepository()
		engine := billingApp.NewEngine(subscriptions, invoices, noopAudit{}, nil, nil)
		assignments := persistence.NewMemoryAssignmentRepository()
		return NewEvaluateAccessHandler(engine, assignments), engine, assignments
	}

	t.Run("allowed access carries plan roles", func(t *testing.T) {
		handler, engine, assignments := newFixture(t)
		_, err := engine.CreateSubscription(context.Background(), billingApp.CreateSubscriptionInput{
			UserID:        "user-1",
			PlanID:        "plan-pro",
			StartDate:     assignedAt,
			CycleDuration: 30 * 24 * time.Hour,
			InitialStatus: billingDomain.SubscriptionActive,
		})
		require.NoError(t, err)
		require.NoError(t, assignments.Assign(context.Background(), &domain.PlanAssignment{
			AssignmentID: "assign-1",
			UserID:       "user-1",
			PlanID:       "plan-pro",
			AssignedAt:   assignedAt,
			Roles:        []string{"pro"},
		}))

		evaluation, err := handler.Handle(context.Background(), "user-1", assignedAt.Add(24*time.Hour))
		require.NoError(t, err)
		assert.True(t, evaluation.Decision.Allowed)
		assert.Equal(t, "plan-pro", evaluation.PlanID)
		assert.Equal(t, []string{"pro"}, evaluation.Roles)
	})

	t.Run("denied access carries no roles", func(t *testing.T) {
		handler, engine, assignments := newFixture(t)
		_, err := engine.CreateSubscription(context.Background(), billingApp.CreateSubscriptionInput{
			UserID:        "user-1",
			PlanID:        "plan-pro",
			StartDate:     assignedAt,
			CycleDuration: 30 * 24 * time.Hour,
			InitialStatus: billingDomain.SubscriptionSuspended,
		})
		require.NoError(t, err)
		require.NoError(t, assignments.Assign(context.Background(), &domain.PlanAssignment{
			AssignmentID: "assign-1",
			UserID:       "user-1",
			PlanID:       "plan-pro",
			AssignedAt:   assignedAt,
			Roles:        []string{"pro"},
		}))

		evaluation, err := handler.Handle(context.Background(), "user-1", assignedAt.Add(24*time.Hour))
		require.NoError(t, err)
		assert.False(t, evaluation.Decision.Allowed)
		assert.Empty(t, evaluation.Roles)
	})

	t.Run("no subscription denies", func(t *testing.T) {
		handler, _, _ := newFixture(t)
		evaluation, err := handler.Handle(context.Background(), "nobody", assignedAt)
		require.NoError(t, err)
		assert.False(t, evaluation.Decision.Allowed)
		assert.Equal(t, billingApp.ReasonNoSubscription, evaluation.Decision.Reason)
	})
}
