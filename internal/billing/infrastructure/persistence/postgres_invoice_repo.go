package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/revenia/revenia/internal/billing/domain"
	"github.com/shopspring/decimal"
)

// PostgresInvoiceRepository implements InvoiceRepository with PostgreSQL.
// Amounts map to a NUMERIC column through their decimal string form.
type PostgresInvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInvoiceRepository creates a new repository.
func NewPostgresInvoiceRepository(pool *pgxpool.Pool) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{pool: pool}
}

// Add inserts a new invoice.
func (r *PostgresInvoiceRepository) Add(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, plan_id, period_start, period_end, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.UserID,
		invoice.PlanID,
		invoice.BillingPeriod.Start,
		invoice.BillingPeriod.End,
		invoice.Amount.String(),
		string(invoice.Status),
	)
	return err
}

// Get returns the invoice with the given id.
func (r *PostgresInvoiceRepository) Get(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT id, user_id, plan_id, period_start, period_end, amount::text, status
		FROM invoices WHERE id = $1
	`
	var (
		invoice domain.Invoice
		amount  string
		status  string
	)
	err := r.pool.QueryRow(ctx, query, invoiceID).Scan(
		&invoice.InvoiceID,
		&invoice.UserID,
		&invoice.PlanID,
		&invoice.BillingPeriod.Start,
		&invoice.BillingPeriod.End,
		&amount,
		&status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}

	invoice.Status = domain.InvoiceStatus(status)
	if invoice.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Update replaces the stored invoice state.
func (r *PostgresInvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	query := `UPDATE invoices SET amount = $1, status = $2 WHERE id = $3`
	tag, err := r.pool.Exec(ctx, query,
		invoice.Amount.String(),
		string(invoice.Status),
		invoice.InvoiceID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
