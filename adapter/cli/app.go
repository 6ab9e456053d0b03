package cli

import (
	auditApp "github.com/revenia/revenia/internal/audit/application"
	billingApp "github.com/revenia/revenia/internal/billing/application"
	billingDomain "github.com/revenia/revenia/internal/billing/domain"
	plansApp "github.com/revenia/revenia/internal/plans/application"
	plansDomain "github.com/revenia/revenia/internal/plans/domain"
)

// App holds the CLI application dependencies.
type App struct {
	// Billing
	Engine        *billingApp.Engine
	Subscriptions billingDomain.SubscriptionRepository

	// Plans
	PlanRepository        plansDomain.PlanRepository
	AssignPlanHandler     *plansApp.AssignPlanHandler
	ChangePlanHandler     *plansApp.ChangePlanHandler
	EvaluateAccessHandler *plansApp.EvaluateAccessHandler

	// Audit
	AuditService *auditApp.Service

	// Current user (configured per environment)
	CurrentUserID string
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	engine *billingApp.Engine,
	subscriptions billingDomain.SubscriptionRepository,
	planRepository plansDomain.PlanRepository,
	assignPlanHandler *plansApp.AssignPlanHandler,
	changePlanHandler *plansApp.ChangePlanHandler,
	evaluateAccessHandler *plansApp.EvaluateAccessHandler,
	auditService *auditApp.Service,
) *App {
	return &App{
		Engine:                engine,
		Subscriptions:         subscriptions,
		PlanRepository:        planRepository,
		AssignPlanHandler:     assignPlanHandler,
		ChangePlanHandler:     changePlanHandler,
		EvaluateAccessHandler: evaluateAccessHandler,
		AuditService:          auditService,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id string) {
	a.CurrentUserID = id
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
