package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionStatusCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    SubscriptionStatus
		to      SubscriptionStatus
		allowed bool
	}{
		{"pending to active", SubscriptionPendingPayment, SubscriptionActive, true},
		{"pending to grace", SubscriptionPendingPayment, SubscriptionInGracePeriod, true},
		{"pending to suspended", SubscriptionPendingPayment, SubscriptionSuspended, true},
		{"pending to canceled", SubscriptionPendingPayment, SubscriptionCanceled, true},
		{"pending to expired", SubscriptionPendingPayment, SubscriptionExpired, true},
		{"active to pending", SubscriptionActive, SubscriptionPendingPayment, true},
		{"active to grace", SubscriptionActive, SubscriptionInGracePeriod, true},
		{"grace to active", SubscriptionInGracePeriod, SubscriptionActive, true},
		{"grace to suspended", SubscriptionInGracePeriod, SubscriptionSuspended, true},
		{"grace to pending rejected", SubscriptionInGracePeriod, SubscriptionPendingPayment, false},
		{"suspended to pending", SubscriptionSuspended, SubscriptionPendingPayment, true},
		{"suspended to active rejected", SubscriptionSuspended, SubscriptionActive, false},
		{"suspended to grace rejected", SubscriptionSuspended, SubscriptionInGracePeriod, false},
		{"canceled accepts nothing", SubscriptionCanceled, SubscriptionActive, false},
		{"expired accepts nothing", SubscriptionExpired, SubscriptionPendingPayment, false},
		{"no-op not in table", SubscriptionActive, SubscriptionActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestInvoiceStatusCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{"created to awaiting", InvoiceStatusCreated, InvoiceAwaitingPayment, true},
		{"created to canceled", InvoiceStatusCreated, InvoiceCanceled, true},
		{"created to paid rejected", InvoiceStatusCreated, InvoicePaid, false},
		{"awaiting to paid", InvoiceAwaitingPayment, InvoicePaid, true},
		{"awaiting to failed", InvoiceAwaitingPayment, InvoiceFailed, true},
		{"awaiting to expired", InvoiceAwaitingPayment, InvoiceExpired, true},
		{"awaiting to canceled", InvoiceAwaitingPayment, InvoiceCanceled, true},
		{"failed back to awaiting", InvoiceFailed, InvoiceAwaitingPayment, true},
		{"failed to canceled", InvoiceFailed, InvoiceCanceled, true},
		{"failed to expired", InvoiceFailed, InvoiceExpired, true},
		{"failed to paid rejected", InvoiceFailed, InvoicePaid, false},
		{"paid accepts nothing", InvoicePaid, InvoiceAwaitingPayment, false},
		{"expired accepts nothing", InvoiceExpired, InvoiceAwaitingPayment, false},
		{"canceled accepts nothing", InvoiceCanceled, InvoiceAwaitingPayment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, SubscriptionCanceled.IsTerminal())
	assert.True(t, SubscriptionExpired.IsTerminal())
	assert.False(t, SubscriptionActive.IsTerminal())
	assert.False(t, SubscriptionSuspended.IsTerminal())

	assert.True(t, InvoicePaid.IsTerminal())
	assert.True(t, InvoiceExpired.IsTerminal())
	assert.True(t, InvoiceCanceled.IsTerminal())
	assert.False(t, InvoiceFailed.IsTerminal())
}
