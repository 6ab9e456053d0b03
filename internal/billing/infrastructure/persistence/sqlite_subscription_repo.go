package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/revenia/revenia/internal/billing/domain"
)

// SQLiteSubscriptionRepository implements SubscriptionRepository with SQLite.
type SQLiteSubscriptionRepository struct {
	dbConn *sql.DB
}

// NewSQLiteSubscriptionRepository creates a new repository.
func NewSQLiteSubscriptionRepository(dbConn *sql.DB) *SQLiteSubscriptionRepository {
	return &SQLiteSubscriptionRepository{dbConn: dbConn}
}

const sqliteSubscriptionColumns = `
	id, user_id, plan_id, status, start_date,
	current_cycle_start, current_cycle_end, grace_period_end, cycle_duration_seconds
`

// Add inserts a new subscription.
func (r *SQLiteSubscriptionRepository) Add(ctx context.Context, subscription *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + sqliteSubscriptionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.dbConn.ExecContext(ctx, query,
		subscription.SubscriptionID,
		subscription.UserID,
		subscription.PlanID,
		string(subscription.Status),
		subscription.StartDate.UTC().Format(time.RFC3339Nano),
		subscription.CurrentCycleStart.UTC().Format(time.RFC3339Nano),
		subscription.CurrentCycleEnd.UTC().Format(time.RFC3339Nano),
		nullableTime(subscription.GracePeriodEnd),
		int64(subscription.CycleDuration/time.Second),
	)
	return err
}

// Get returns the subscription with the given id.
func (r *SQLiteSubscriptionRepository) Get(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + sqliteSubscriptionColumns + ` FROM subscriptions WHERE id = ?`
	subscription, err := scanSubscription(r.dbConn.QueryRowContext(ctx, query, subscriptionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSubscriptionNotFound
	}
	return subscription, err
}

// Update replaces the stored subscription state.
func (r *SQLiteSubscriptionRepository) Update(ctx context.Context, subscription *domain.Subscription) error {
	query := `
		UPDATE subscriptions SET
			status = ?,
			current_cycle_start = ?,
			current_cycle_end = ?,
			grace_period_end = ?,
			cycle_duration_seconds = ?
		WHERE id = ?
	`
	res, err := r.dbConn.ExecContext(ctx, query,
		string(subscription.Status),
		subscription.CurrentCycleStart.UTC().Format(time.RFC3339Nano),
		subscription.CurrentCycleEnd.UTC().Format(time.RFC3339Nano),
		nullableTime(subscription.GracePeriodEnd),
		int64(subscription.CycleDuration/time.Second),
		subscription.SubscriptionID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

// FindByUser returns the user's subscription, or nil when none exists.
func (r *SQLiteSubscriptionRepository) FindByUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	query := `SELECT ` + sqliteSubscriptionColumns + ` FROM subscriptions WHERE user_id = ? LIMIT 1`
	subscription, err := scanSubscription(r.dbConn.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return subscription, err
}

// GetByUserAndPlan returns the subscription matching user and plan, or nil.
func (r *SQLiteSubscriptionRepository) GetByUserAndPlan(ctx context.Context, userID, planID string) (*domain.Subscription, error) {
	query := `SELECT ` + sqliteSubscriptionColumns + ` FROM subscriptions WHERE user_id = ? AND plan_id = ? LIMIT 1`
	subscription, err := scanSubscription(r.dbConn.QueryRowContext(ctx, query, userID, planID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return subscription, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var (
		subscription    domain.Subscription
		status          string
		startDate       string
		cycleStart      string
		cycleEnd        string
		graceEnd        sql.NullString
		durationSeconds int64
	)
	err := row.Scan(
		&subscription.SubscriptionID,
		&subscription.UserID,
		&subscription.PlanID,
		&status,
		&startDate,
		&cycleStart,
		&cycleEnd,
		&graceEnd,
		&durationSeconds,
	)
	if err != nil {
		return nil, err
	}

	subscription.Status = domain.SubscriptionStatus(status)
	subscription.CycleDuration = time.Duration(durationSeconds) * time.Second
	if subscription.StartDate, err = time.Parse(time.RFC3339Nano, startDate); err != nil {
		return nil, err
	}
	if subscription.CurrentCycleStart, err = time.Parse(time.RFC3339Nano, cycleStart); err != nil {
		return nil, err
	}
	if subscription.CurrentCycleEnd, err = time.Parse(time.RFC3339Nano, cycleEnd); err != nil {
		return nil, err
	}
	if graceEnd.Valid {
		t, err := time.Parse(time.RFC3339Nano, graceEnd.String)
		if err != nil {
			return nil, err
		}
		subscription.GracePeriodEnd = &t
	}
	return &subscription, nil
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}
