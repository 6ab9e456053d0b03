package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

// InvalidTransitionError reports a status change that is absent from the
// transition table. It carries the entity identity and the attempted
// from/to pair and unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %s to %s (%s)", e.Entity, e.From, e.To, e.ID)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func newSubscriptionTransitionError(id string, from, to SubscriptionStatus) error {
	return &InvalidTransitionError{Entity: "subscription", ID: id, From: string(from), To: string(to)}
}

func newInvoiceTransitionError(id string, from, to InvoiceStatus) error {
	return &InvalidTransitionError{Entity: "invoice", ID: id, From: string(from), To: string(to)}
}
