package domain

import (
	"time"

	"github.com/revenia/revenia/internal/shared/domain"
)

const (
	SubscriptionAggregateType = "Subscription"
	InvoiceAggregateType      = "Invoice"

	RoutingKeySubscriptionCreated       = "billing.subscription.created"
	RoutingKeySubscriptionStatusChanged = "billing.subscription.status_changed"
	RoutingKeyInvoiceCreated            = "billing.invoice.created"
	RoutingKeyInvoiceStatusChanged      = "billing.invoice.status_changed"
)

// Billing period bounds are serialized in RFC 3339 for audit payloads.
const timeLayout = time.RFC3339

// SubscriptionCreated is emitted when a new subscription is created.
type SubscriptionCreated struct {
	domain.BaseEvent
	SubscriptionID string `json:"subscription_id"`
	UserID         string `json:"user_id"`
	PlanID         string `json:"plan_id"`
	Status         string `json:"status"`
}

// NewSubscriptionCreated creates a SubscriptionCreated event.
func NewSubscriptionCreated(s *Subscription) SubscriptionCreated {
	return SubscriptionCreated{
		BaseEvent:      domain.NewBaseEvent(s.SubscriptionID, SubscriptionAggregateType, RoutingKeySubscriptionCreated),
		SubscriptionID: s.SubscriptionID,
		UserID:         s.UserID,
		PlanID:         s.PlanID,
		Status:         string(s.Status),
	}
}

// SubscriptionStatusChanged is emitted on every successful subscription transition.
type SubscriptionStatusChanged struct {
	domain.BaseEvent
	SubscriptionID string `json:"subscription_id"`
	UserID         string `json:"user_id"`
	PlanID         string `json:"plan_id"`
	OldStatus      string `json:"old_status"`
	NewStatus      string `json:"new_status"`
}

// NewSubscriptionStatusChanged creates a SubscriptionStatusChanged event.
func NewSubscriptionStatusChanged(s *Subscription, oldStatus, newStatus SubscriptionStatus) SubscriptionStatusChanged {
	return SubscriptionStatusChanged{
		BaseEvent:      domain.NewBaseEvent(s.SubscriptionID, SubscriptionAggregateType, RoutingKeySubscriptionStatusChanged),
		SubscriptionID: s.SubscriptionID,
		UserID:         s.UserID,
		PlanID:         s.PlanID,
		OldStatus:      string(oldStatus),
		NewStatus:      string(newStatus),
	}
}

// InvoiceCreated is emitted when a new invoice is created.
type InvoiceCreated struct {
	domain.BaseEvent
	InvoiceID   string `json:"invoice_id"`
	UserID      string `json:"user_id"`
	PlanID      string `json:"plan_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Amount      string `json:"amount"`
}

// NewInvoiceCreated creates an InvoiceCreated event.
func NewInvoiceCreated(i *Invoice) InvoiceCreated {
	return InvoiceCreated{
		BaseEvent:   domain.NewBaseEvent(i.InvoiceID, InvoiceAggregateType, RoutingKeyInvoiceCreated),
		InvoiceID:   i.InvoiceID,
		UserID:      i.UserID,
		PlanID:      i.PlanID,
		PeriodStart: i.BillingPeriod.Start.Format(timeLayout),
		PeriodEnd:   i.BillingPeriod.End.Format(timeLayout),
		Amount:      i.Amount.String(),
	}
}

// InvoiceStatusChanged is emitted on every successful invoice transition.
type InvoiceStatusChanged struct {
	domain.BaseEvent
	InvoiceID string `json:"invoice_id"`
	UserID    string `json:"user_id"`
	PlanID    string `json:"plan_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// NewInvoiceStatusChanged creates an InvoiceStatusChanged event.
func NewInvoiceStatusChanged(i *Invoice, oldStatus, newStatus InvoiceStatus) InvoiceStatusChanged {
	return InvoiceStatusChanged{
		BaseEvent: domain.NewBaseEvent(i.InvoiceID, InvoiceAggregateType, RoutingKeyInvoiceStatusChanged),
		InvoiceID: i.InvoiceID,
		UserID:    i.UserID,
		PlanID:    i.PlanID,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
	}
}
