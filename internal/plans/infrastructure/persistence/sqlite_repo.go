package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/revenia/revenia/internal/plans/domain"
	"github.com/shopspring/decimal"
)

const plansSchema = `
CREATE TABLE IF NOT EXISTS plans (
	plan_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	price TEXT NOT NULL,
	cycle_duration_seconds INTEGER NOT NULL,
	mapped_roles TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS plan_assignments (
	assignment_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	plan_id TEXT NOT NULL,
	assigned_at TEXT NOT NULL,
	roles TEXT NOT NULL DEFAULT '[]',
	context TEXT NOT NULL DEFAULT '{}'
);
`

// EnsureSQLiteSchema creates the plan catalog tables if they do not exist.
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, plansSchema); err != nil {
		return fmt.Errorf("create plans schema: %w", err)
	}
	return nil
}

// SQLitePlanRepository persists the plan catalog in SQLite.
type SQLitePlanRepository struct {
	db *sql.DB
}

// NewSQLitePlanRepository creates a new SQLite plan repository.
func NewSQLitePlanRepository(dbConn *sql.DB) *SQLitePlanRepository {
	return &SQLitePlanRepository{db: dbConn}
}

// Save stores or replaces a plan.
func (r *SQLitePlanRepository) Save(ctx context.Context, plan *domain.Plan) error {
	roles, err := json.Marshal(plan.MappedRoles)
	if err != nil {
		return fmt.Errorf("marshal mapped roles: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plans (plan_id, name, status, price, cycle_duration_seconds, mapped_roles)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(plan_id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			price = excluded.price,
			cycle_duration_seconds = excluded.cycle_duration_seconds,
			mapped_roles = excluded.mapped_roles`,
		plan.PlanID,
		plan.Name,
		string(plan.Status),
		plan.Price.String(),
		int64(plan.CycleDuration/time.Second),
		string(roles),
	)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// FindByID returns the plan with the given id.
func (r *SQLitePlanRepository) FindByID(ctx context.Context, planID string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT plan_id, name, status, price, cycle_duration_seconds, mapped_roles
		FROM plans WHERE plan_id = ?`, planID)
	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPlanNotFound
	}
	return plan, err
}

// ListActive returns all assignable plans.
func (r *SQLitePlanRepository) ListActive(ctx context.Context) ([]*domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT plan_id, name, status, price, cycle_duration_seconds, mapped_roles
		FROM plans WHERE status = ? ORDER BY name`, string(domain.PlanActive))
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*domain.Plan, error) {
	var (
		plan         domain.Plan
		status       string
		price        string
		cycleSeconds int64
		roles        string
	)
	if err := row.Scan(&plan.PlanID, &plan.Name, &status, &price, &cycleSeconds, &roles); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}
	parsedPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse plan price: %w", err)
	}
	plan.Status = domain.PlanStatus(status)
	plan.Price = parsedPrice
	plan.CycleDuration = time.Duration(cycleSeconds) * time.Second
	if err := json.Unmarshal([]byte(roles), &plan.MappedRoles); err != nil {
		return nil, fmt.Errorf("parse mapped roles: %w", err)
	}
	return &plan, nil
}

// SQLiteAssignmentRepository persists plan assignments in SQLite. Each user
// has at most one current assignment.
type SQLiteAssignmentRepository struct {
	db *sql.DB
}

// NewSQLiteAssignmentRepository creates a new SQLite assignment repository.
func NewSQLiteAssignmentRepository(dbConn *sql.DB) *SQLiteAssignmentRepository {
	return &SQLiteAssignmentRepository{db: dbConn}
}

// Assign stores the user's assignment.
func (r *SQLiteAssignmentRepository) Assign(ctx context.Context, assignment *domain.PlanAssignment) error {
	return r.upsert(ctx, assignment)
}

// ChangePlan replaces the user's assignment.
func (r *SQLiteAssignmentRepository) ChangePlan(ctx context.Context, userID string, assignment *domain.PlanAssignment) error {
	return r.upsert(ctx, assignment)
}

func (r *SQLiteAssignmentRepository) upsert(ctx context.Context, assignment *domain.PlanAssignment) error {
	roles, err := json.Marshal(assignment.Roles)
	if err != nil {
		return fmt.Errorf("marshal roles: %w", err)
	}
	assignmentContext := assignment.Context
	if assignmentContext == nil {
		assignmentContext = map[string]string{}
	}
	contextJSON, err := json.Marshal(assignmentContext)
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plan_assignments (assignment_id, user_id, plan_id, assigned_at, roles, context)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			assignment_id = excluded.assignment_id,
			plan_id = excluded.plan_id,
			assigned_at = excluded.assigned_at,
			roles = excluded.roles,
			context = excluded.context`,
		assignment.AssignmentID,
		assignment.UserID,
		assignment.PlanID,
		assignment.AssignedAt.UTC().Format(time.RFC3339Nano),
		string(roles),
		string(contextJSON),
	)
	if err != nil {
		return fmt.Errorf("save assignment: %w", err)
	}
	return nil
}

// FindCurrentByUser returns the user's assignment, or nil when none exists.
func (r *SQLiteAssignmentRepository) FindCurrentByUser(ctx context.Context, userID string) (*domain.PlanAssignment, error) {
	var (
		assignment  domain.PlanAssignment
		assignedAt  string
		roles       string
		contextJSON string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT assignment_id, user_id, plan_id, assigned_at, roles, context
		FROM plan_assignments WHERE user_id = ?`, userID).
		Scan(&assignment.AssignmentID, &assignment.UserID, &assignment.PlanID, &assignedAt, &roles, &contextJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	assignment.AssignedAt, err = time.Parse(time.RFC3339Nano, assignedAt)
	if err != nil {
		return nil, fmt.Errorf("parse assigned_at: %w", err)
	}
	if err := json.Unmarshal([]byte(roles), &assignment.Roles); err != nil {
		return nil, fmt.Errorf("parse roles: %w", err)
	}
	if err := json.Unmarshal([]byte(contextJSON), &assignment.Context); err != nil {
		return nil, fmt.Errorf("parse context: %w", err)
	}
	return &assignment, nil
}
