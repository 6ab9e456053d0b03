package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/revenia/revenia/internal/billing/domain"
)

// PostgresSubscriptionRepository implements SubscriptionRepository with
// PostgreSQL.
type PostgresSubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSubscriptionRepository creates a new repository.
func NewPostgresSubscriptionRepository(pool *pgxpool.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

const pgSubscriptionColumns = `
	id, user_id, plan_id, status, start_date,
	current_cycle_start, current_cycle_end, grace_period_end, cycle_duration_seconds
`

// Add inserts a new subscription.
func (r *PostgresSubscriptionRepository) Add(ctx context.Context, subscription *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + pgSubscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		subscription.SubscriptionID,
		subscription.UserID,
		subscription.PlanID,
		string(subscription.Status),
		subscription.StartDate,
		subscription.CurrentCycleStart,
		subscription.CurrentCycleEnd,
		subscription.GracePeriodEnd,
		int64(subscription.CycleDuration/time.Second),
	)
	return err
}

// Get returns the subscription with the given id.
func (r *PostgresSubscriptionRepository) Get(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + pgSubscriptionColumns + ` FROM subscriptions WHERE id = $1`
	subscription, err := scanPgSubscription(r.pool.QueryRow(ctx, query, subscriptionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSubscriptionNotFound
	}
	return subscription, err
}

// Update replaces the stored subscription state.
func (r *PostgresSubscriptionRepository) Update(ctx context.Context, subscription *domain.Subscription) error {
	query := `
		UPDATE subscriptions SET
			status = $1,
			current_cycle_start = $2,
			current_cycle_end = $3,
			grace_period_end = $4,
			cycle_duration_seconds = $5
		WHERE id = $6
	`
	tag, err := r.pool.Exec(ctx, query,
		string(subscription.Status),
		subscription.CurrentCycleStart,
		subscription.CurrentCycleEnd,
		subscription.GracePeriodEnd,
		int64(subscription.CycleDuration/time.Second),
		subscription.SubscriptionID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

// FindByUser returns the user's subscription, or nil when none exists.
func (r *PostgresSubscriptionRepository) FindByUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	query := `SELECT ` + pgSubscriptionColumns + ` FROM subscriptions WHERE user_id = $1 LIMIT 1`
	subscription, err := scanPgSubscription(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return subscription, err
}

// GetByUserAndPlan returns the subscription matching user and plan, or nil.
func (r *PostgresSubscriptionRepository) GetByUserAndPlan(ctx context.Context, userID, planID string) (*domain.Subscription, error) {
	query := `SELECT ` + pgSubscriptionColumns + ` FROM subscriptions WHERE user_id = $1 AND plan_id = $2 LIMIT 1`
	subscription, err := scanPgSubscription(r.pool.QueryRow(ctx, query, userID, planID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return subscription, err
}

func scanPgSubscription(row pgx.Row) (*domain.Subscription, error) {
	var (
		subscription    domain.Subscription
		status          string
		durationSeconds int64
	)
	err := row.Scan(
		&subscription.SubscriptionID,
		&subscription.UserID,
		&subscription.PlanID,
		&status,
		&subscription.StartDate,
		&subscription.CurrentCycleStart,
		&subscription.CurrentCycleEnd,
		&subscription.GracePeriodEnd,
		&durationSeconds,
	)
	if err != nil {
		return nil, err
	}
	subscription.Status = domain.SubscriptionStatus(status)
	subscription.CycleDuration = time.Duration(durationSeconds) * time.Second
	return &subscription, nil
}
