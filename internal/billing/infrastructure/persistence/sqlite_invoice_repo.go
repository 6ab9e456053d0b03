package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/revenia/revenia/internal/billing/domain"
	"github.com/shopspring/decimal"
)

// SQLiteInvoiceRepository implements InvoiceRepository with SQLite. Amounts
// are stored as their exact decimal string representation.
type SQLiteInvoiceRepository struct {
	dbConn *sql.DB
}

// NewSQLiteInvoiceRepository creates a new repository.
func NewSQLiteInvoiceRepository(dbConn *sql.DB) *SQLiteInvoiceRepository {
	return &SQLiteInvoiceRepository{dbConn: dbConn}
}

// Add inserts a new invoice.
func (r *SQLiteInvoiceRepository) Add(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, plan_id, period_start, period_end, amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.dbConn.ExecContext(ctx, query,
		invoice.InvoiceID,
		invoice.UserID,
		invoice.PlanID,
		invoice.BillingPeriod.Start.UTC().Format(time.RFC3339Nano),
		invoice.BillingPeriod.End.UTC().Format(time.RFC3339Nano),
		invoice.Amount.String(),
		string(invoice.Status),
	)
	return err
}

// Get returns the invoice with the given id.
func (r *SQLiteInvoiceRepository) Get(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT id, user_id, plan_id, period_start, period_end, amount, status
		FROM invoices WHERE id = ?
	`
	var (
		invoice     domain.Invoice
		periodStart string
		periodEnd   string
		amount      string
		status      string
	)
	err := r.dbConn.QueryRowContext(ctx, query, invoiceID).Scan(
		&invoice.InvoiceID,
		&invoice.UserID,
		&invoice.PlanID,
		&periodStart,
		&periodEnd,
		&amount,
		&status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}

	invoice.Status = domain.InvoiceStatus(status)
	if invoice.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	if invoice.BillingPeriod.Start, err = time.Parse(time.RFC3339Nano, periodStart); err != nil {
		return nil, err
	}
	if invoice.BillingPeriod.End, err = time.Parse(time.RFC3339Nano, periodEnd); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Update replaces the stored invoice state.
func (r *SQLiteInvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	query := `UPDATE invoices SET amount = ?, status = ? WHERE id = ?`
	res, err := r.dbConn.ExecContext(ctx, query,
		invoice.Amount.String(),
		string(invoice.Status),
		invoice.InvoiceID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
