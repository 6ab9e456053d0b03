package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/revenia/revenia/internal/billing/domain"
	sharedapp "github.com/revenia/revenia/internal/shared/application"
	shareddomain "github.com/revenia/revenia/internal/shared/domain"
	"github.com/shopspring/decimal"
)

// ReconcileMetrics observes reconciliation outcomes that are tolerated but
// worth surfacing, such as invoices with no owning subscription.
type ReconcileMetrics interface {
	RecordOrphanedInvoice(ctx context.Context, invoiceID string)
}

type noopMetrics struct{}

func (noopMetrics) RecordOrphanedInvoice(context.Context, string) {}

// Engine orchestrates the subscription and invoice state machines. It owns
// every transition, runs reconciliation after invoice changes, and publishes
// exactly one audit event per successful mutation.
//
// The engine never reads the system clock; callers pass now explicitly into
// every temporal operation. It performs no locking of its own: operations on
// the same identity must not interleave, and the repositories are
// responsible for any concurrency control beyond that.
type Engine struct {
	subscriptions domain.SubscriptionRepository
	invoices      domain.InvoiceRepository
	audit         domain.AuditPublisher
	metrics       ReconcileMetrics
	logger        *slog.Logger
}

// NewEngine creates a billing engine. metrics and logger may be nil.
func NewEngine(
	subscriptions domain.SubscriptionRepository,
	invoices domain.InvoiceRepository,
	audit domain.AuditPublisher,
	metrics ReconcileMetrics,
	logger *slog.Logger,
) *Engine {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		subscriptions: subscriptions,
		invoices:      invoices,
		audit:         audit,
		metrics:       metrics,
		logger:        logger,
	}
}

// CreateSubscriptionInput carries the data needed to create a subscription.
type CreateSubscriptionInput struct {
	UserID        string
	PlanID        string
	StartDate     time.Time
	CycleDuration time.Duration
	// InitialStatus defaults to pending_payment when empty. Creation sets
	// the status directly; the transition table does not apply.
	InitialStatus  domain.SubscriptionStatus
	GracePeriodEnd *time.Time
}

// CreateSubscription assigns a fresh identity, derives the first cycle from
// the start date, persists the subscription and publishes a
// billing.subscription.created event.
func (e *Engine) CreateSubscription(ctx context.Context, input CreateSubscriptionInput) (*domain.Subscription, error) {
	status := input.InitialStatus
	if status == "" {
		status = domain.SubscriptionPendingPayment
	}

	subscription := &domain.Subscription{
		SubscriptionID:    uuid.NewString(),
		UserID:            input.UserID,
		PlanID:            input.PlanID,
		Status:            status,
		StartDate:         input.StartDate,
		CurrentCycleStart: input.StartDate,
		CurrentCycleEnd:   input.StartDate.Add(input.CycleDuration),
		GracePeriodEnd:    input.GracePeriodEnd,
		CycleDuration:     input.CycleDuration,
	}

	if err := e.subscriptions.Add(ctx, subscription); err != nil {
		return nil, err
	}
	event := domain.NewSubscriptionCreated(subscription)
	if err := e.publish(ctx, &event, subscription.UserID); err != nil {
		return nil, err
	}
	return subscription, nil
}

// GrantGracePeriod sets the grace deadline and moves the subscription into
// the grace period through the standard transition table.
func (e *Engine) GrantGracePeriod(ctx context.Context, subscriptionID string, gracePeriodEnd time.Time) (*domain.Subscription, error) {
	subscription, err := e.subscriptions.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	subscription.GrantGrace(gracePeriodEnd)
	if subscription.Status == domain.SubscriptionInGracePeriod {
		// The status itself is a no-op, but the new deadline still needs to
		// be persisted.
		if err := e.subscriptions.Update(ctx, subscription); err != nil {
			return nil, err
		}
		return subscription, nil
	}
	if err := e.transitionSubscription(ctx, subscription, domain.SubscriptionInGracePeriod); err != nil {
		return nil, err
	}
	return subscription, nil
}

// CreateInvoice bills the subscription's current cycle. The invoice is
// created awaiting payment and the owning subscription is forced back to
// pending_payment (a no-op if already there).
func (e *Engine) CreateInvoice(ctx context.Context, subscriptionID string, amount decimal.Decimal) (*domain.Invoice, error) {
	subscription, err := e.subscriptions.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		UserID:        subscription.UserID,
		PlanID:        subscription.PlanID,
		BillingPeriod: subscription.CurrentPeriod(),
		Amount:        amount,
		Status:        domain.InvoiceAwaitingPayment,
	}

	if err := e.invoices.Add(ctx, invoice); err != nil {
		return nil, err
	}
	event := domain.NewInvoiceCreated(invoice)
	if err := e.publish(ctx, &event, invoice.UserID); err != nil {
		return nil, err
	}
	if err := e.transitionSubscription(ctx, subscription, domain.SubscriptionPendingPayment); err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoiceStatus applies an invoice transition and reconciles the
// owning subscription against the invoice's new status. An unchanged status
// is a silent success. A reconciliation transition rejected by the table
// surfaces after the invoice itself has already been persisted and audited;
// the pair stays inconsistent until a subsequent call corrects it.
func (e *Engine) UpdateInvoiceStatus(ctx context.Context, invoiceID string, newStatus domain.InvoiceStatus) (*domain.Invoice, error) {
	invoice, err := e.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	oldStatus := invoice.Status
	if newStatus == oldStatus {
		return invoice, nil
	}
	if err := invoice.TransitionTo(newStatus); err != nil {
		return nil, err
	}
	if err := e.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}
	event := domain.NewInvoiceStatusChanged(invoice, oldStatus, newStatus)
	if err := e.publish(ctx, &event, invoice.UserID); err != nil {
		return nil, err
	}
	if err := e.reconcileSubscription(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// EvaluateCycle checks whether the subscription's cycle has elapsed at now.
// If it has, an invoice is created for the elapsed cycle (amount defaults to
// zero when nil; deployments are expected to supply a pricing source) and
// the subscription lands in pending_payment, in_grace_period or suspended
// depending on the grace deadline. Returns nil when the cycle has not
// elapsed.
func (e *Engine) EvaluateCycle(ctx context.Context, subscriptionID string, now time.Time, amount *decimal.Decimal) (*domain.Invoice, error) {
	subscription, err := e.subscriptions.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if now.Before(subscription.CurrentCycleEnd) {
		return nil, nil
	}

	invoiceAmount := decimal.Zero
	if amount != nil {
		invoiceAmount = *amount
	}
	invoice, err := e.CreateInvoice(ctx, subscription.SubscriptionID, invoiceAmount)
	if err != nil {
		return nil, err
	}

	// Re-read: CreateInvoice moved the subscription to pending_payment.
	subscription, err = e.subscriptions.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	var target domain.SubscriptionStatus
	switch {
	case subscription.IsWithinGrace(now):
		target = domain.SubscriptionInGracePeriod
	case subscription.GracePeriodEnd != nil:
		target = domain.SubscriptionSuspended
	default:
		target = domain.SubscriptionPendingPayment
	}
	if err := e.transitionSubscription(ctx, subscription, target); err != nil {
		return nil, err
	}
	return invoice, nil
}

// transitionSubscription applies a validated status change. A no-op change
// writes nothing and publishes nothing.
func (e *Engine) transitionSubscription(ctx context.Context, subscription *domain.Subscription, newStatus domain.SubscriptionStatus) error {
	if subscription.Status == newStatus {
		return nil
	}
	oldStatus := subscription.Status
	if err := subscription.TransitionTo(newStatus); err != nil {
		return err
	}
	if err := e.subscriptions.Update(ctx, subscription); err != nil {
		return err
	}
	event := domain.NewSubscriptionStatusChanged(subscription, oldStatus, newStatus)
	return e.publish(ctx, &event, subscription.UserID)
}

func (e *Engine) publish(ctx context.Context, event shareddomain.DomainEvent, userID string) error {
	sharedapp.ApplyEventMetadata([]shareddomain.DomainEvent{event}, sharedapp.NewEventMetadata(userID))
	return e.audit.Publish(ctx, event)
}
