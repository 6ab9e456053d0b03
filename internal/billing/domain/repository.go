package domain

import (
	"context"

	shareddomain "github.com/revenia/revenia/internal/shared/domain"
)

// SubscriptionRepository defines access for subscription persistence.
// Lookups by id fail with ErrSubscriptionNotFound; the by-user lookups
// return nil without error when no subscription matches.
type SubscriptionRepository interface {
	Add(ctx context.Context, subscription *Subscription) error
	Get(ctx context.Context, subscriptionID string) (*Subscription, error)
	Update(ctx context.Context, subscription *Subscription) error
	FindByUser(ctx context.Context, userID string) (*Subscription, error)
	GetByUserAndPlan(ctx context.Context, userID, planID string) (*Subscription, error)
}

// InvoiceRepository defines access for invoice persistence. Get fails with
// ErrInvoiceNotFound when the invoice is absent.
type InvoiceRepository interface {
	Add(ctx context.Context, invoice *Invoice) error
	Get(ctx context.Context, invoiceID string) (*Invoice, error)
	Update(ctx context.Context, invoice *Invoice) error
}

// AuditPublisher delivers audit events to the configured sink. Delivery and
// serialization are the sink's concern; the engine publishes exactly one
// event per successful mutation and does not retry.
type AuditPublisher interface {
	Publish(ctx context.Context, event shareddomain.DomainEvent) error
}
