package domain

import "github.com/shopspring/decimal"

// Invoice bills one subscription cycle. Amounts are exact decimals; an
// invoice is always tied to the cycle bounds its owning subscription had at
// creation time. Paid, expired and canceled invoices are terminal and
// invoices are never deleted.
type Invoice struct {
	InvoiceID     string
	UserID        string
	PlanID        string
	BillingPeriod BillingPeriod
	Amount        decimal.Decimal
	Status        InvoiceStatus
}

// TransitionTo moves the invoice to a new status after validating the change
// against the transition table.
func (i *Invoice) TransitionTo(newStatus InvoiceStatus) error {
	if !i.Status.CanTransition(newStatus) {
		return newInvoiceTransitionError(i.InvoiceID, i.Status, newStatus)
	}
	i.Status = newStatus
	return nil
}
