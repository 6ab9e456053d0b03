package domain

// SubscriptionStatus represents the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive         SubscriptionStatus = "active"
	SubscriptionPendingPayment SubscriptionStatus = "pending_payment"
	SubscriptionInGracePeriod  SubscriptionStatus = "in_grace_period"
	SubscriptionSuspended      SubscriptionStatus = "suspended"
	SubscriptionCanceled       SubscriptionStatus = "canceled"
	SubscriptionExpired        SubscriptionStatus = "expired"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusCreated   InvoiceStatus = "created"
	InvoiceAwaitingPayment InvoiceStatus = "awaiting_payment"
	InvoicePaid            InvoiceStatus = "paid"
	InvoiceFailed          InvoiceStatus = "failed"
	InvoiceExpired         InvoiceStatus = "expired"
	InvoiceCanceled        InvoiceStatus = "canceled"
)

// The transition tables are data, not branching code: a transition is legal
// iff the target status is a member of the set keyed by the current status.
// Terminal states map to an empty set.
var subscriptionTransitions = map[SubscriptionStatus]map[SubscriptionStatus]struct{}{
	SubscriptionPendingPayment: statusSet(
		SubscriptionActive,
		SubscriptionInGracePeriod,
		SubscriptionSuspended,
		SubscriptionCanceled,
		SubscriptionExpired,
	),
	SubscriptionActive: statusSet(
		SubscriptionPendingPayment,
		SubscriptionInGracePeriod,
		SubscriptionSuspended,
		SubscriptionCanceled,
		SubscriptionExpired,
	),
	SubscriptionInGracePeriod: statusSet(
		SubscriptionActive,
		SubscriptionSuspended,
		SubscriptionCanceled,
		SubscriptionExpired,
	),
	SubscriptionSuspended: statusSet(
		SubscriptionPendingPayment,
		SubscriptionCanceled,
		SubscriptionExpired,
	),
	SubscriptionCanceled: {},
	SubscriptionExpired:  {},
}

var invoiceTransitions = map[InvoiceStatus]map[InvoiceStatus]struct{}{
	InvoiceStatusCreated: invoiceStatusSet(
		InvoiceAwaitingPayment,
		InvoiceCanceled,
	),
	InvoiceAwaitingPayment: invoiceStatusSet(
		InvoicePaid,
		InvoiceFailed,
		InvoiceExpired,
		InvoiceCanceled,
	),
	InvoiceFailed: invoiceStatusSet(
		InvoiceAwaitingPayment,
		InvoiceCanceled,
		InvoiceExpired,
	),
	InvoicePaid:     {},
	InvoiceExpired:  {},
	InvoiceCanceled: {},
}

func statusSet(statuses ...SubscriptionStatus) map[SubscriptionStatus]struct{} {
	set := make(map[SubscriptionStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

func invoiceStatusSet(statuses ...InvoiceStatus) map[InvoiceStatus]struct{} {
	set := make(map[InvoiceStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// CanTransition reports whether a subscription may move from one status to another.
// A no-op transition (from == to) is not part of the table; callers treat it
// as a silent success before consulting the table.
func (s SubscriptionStatus) CanTransition(to SubscriptionStatus) bool {
	_, ok := subscriptionTransitions[s][to]
	return ok
}

// IsTerminal reports whether no further transitions are permitted.
func (s SubscriptionStatus) IsTerminal() bool {
	return len(subscriptionTransitions[s]) == 0
}

func (s SubscriptionStatus) String() string { return string(s) }

// CanTransition reports whether an invoice may move from one status to another.
func (s InvoiceStatus) CanTransition(to InvoiceStatus) bool {
	_, ok := invoiceTransitions[s][to]
	return ok
}

// IsTerminal reports whether no further transitions are permitted.
func (s InvoiceStatus) IsTerminal() bool {
	return len(invoiceTransitions[s]) == 0
}

func (s InvoiceStatus) String() string { return string(s) }
