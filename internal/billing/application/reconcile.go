package application

import (
	"context"

	"github.com/revenia/revenia/internal/billing/domain"
)

// reconcileStep is the subscription change a reconciled invoice outcome asks
// for. It is computed as a pure function of the invoice's new status and the
// subscription snapshot, then applied through the same validated transition
// path as any other caller.
type reconcileStep struct {
	target       domain.SubscriptionStatus
	advanceCycle bool
	clearGrace   bool
}

// planReconciliation maps an invoice outcome onto a subscription transition
// request. The second return value is false when the outcome requires no
// subscription change.
func planReconciliation(invoiceStatus domain.InvoiceStatus, subscription *domain.Subscription) (reconcileStep, bool) {
	switch invoiceStatus {
	case domain.InvoicePaid:
		return reconcileStep{
			target:       domain.SubscriptionActive,
			advanceCycle: true,
			clearGrace:   true,
		}, true
	case domain.InvoiceExpired, domain.InvoiceCanceled:
		return reconcileStep{target: domain.SubscriptionExpired}, true
	case domain.InvoiceFailed:
		if subscription.GracePeriodEnd != nil {
			return reconcileStep{target: domain.SubscriptionInGracePeriod}, true
		}
		return reconcileStep{target: domain.SubscriptionSuspended}, true
	case domain.InvoiceAwaitingPayment:
		if subscription.Status != domain.SubscriptionPendingPayment {
			return reconcileStep{target: domain.SubscriptionPendingPayment}, true
		}
		return reconcileStep{}, false
	default:
		return reconcileStep{}, false
	}
}

// reconcileSubscription propagates an invoice outcome into the owning
// subscription's state. An invoice with no matching subscription is
// tolerated: the call succeeds, but the miss is logged and counted so data
// integrity issues do not hide behind the no-op.
func (e *Engine) reconcileSubscription(ctx context.Context, invoice *domain.Invoice) error {
	subscription, err := e.subscriptions.GetByUserAndPlan(ctx, invoice.UserID, invoice.PlanID)
	if err != nil {
		return err
	}
	if subscription == nil {
		e.logger.Warn("no subscription found for reconciled invoice",
			"invoice_id", invoice.InvoiceID,
			"user_id", invoice.UserID,
			"plan_id", invoice.PlanID,
		)
		e.metrics.RecordOrphanedInvoice(ctx, invoice.InvoiceID)
		return nil
	}

	step, ok := planReconciliation(invoice.Status, subscription)
	if !ok {
		return nil
	}

	if step.advanceCycle {
		// The next cycle starts where the paid invoice's period ended.
		subscription.CurrentCycleStart = invoice.BillingPeriod.End
		subscription.CurrentCycleEnd = subscription.CurrentCycleStart.Add(subscription.CycleDuration)
	}
	if step.clearGrace {
		subscription.ClearGrace()
	}

	if subscription.Status == step.target {
		// The status itself is a no-op, but cycle or grace fields may have
		// changed and still need to be persisted.
		if step.advanceCycle || step.clearGrace {
			return e.subscriptions.Update(ctx, subscription)
		}
		return nil
	}
	return e.transitionSubscription(ctx, subscription, step.target)
}
