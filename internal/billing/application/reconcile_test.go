package application

import (
	"testing"
	"time"

	"github.com/revenia/revenia/internal/billing/domain"
	"github.com/stretchr/testify/assert"
)

func TestPlanReconciliation(t *testing.T) {
	grace := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		invoiceStatus domain.InvoiceStatus
		subStatus     domain.SubscriptionStatus
		grace         *time.Time
		wantStep      bool
		wantTarget    domain.SubscriptionStatus
		wantAdvance   bool
		wantClear     bool
	}{
		{
			name:          "paid activates, advances and clears grace",
			invoiceStatus: domain.InvoicePaid,
			subStatus:     domain.SubscriptionPendingPayment,
			grace:         &grace,
			wantStep:      true,
			wantTarget:    domain.SubscriptionActive,
			wantAdvance:   true,
			wantClear:     true,
		},
		{
			name:          "expired expires",
			invoiceStatus: domain.InvoiceExpired,
			subStatus:     domain.SubscriptionPendingPayment,
			wantStep:      true,
			wantTarget:    domain.SubscriptionExpired,
		},
		{
			name:          "canceled expires",
			invoiceStatus: domain.InvoiceCanceled,
			subStatus:     domain.SubscriptionPendingPayment,
			wantStep:      true,
			wantTarget:    domain.SubscriptionExpired,
		},
		{
			name:          "failed with grace enters grace",
			invoiceStatus: domain.InvoiceFailed,
			subStatus:     domain.SubscriptionPendingPayment,
			grace:         &grace,
			wantStep:      true,
			wantTarget:    domain.SubscriptionInGracePeriod,
		},
		{
			name:          "failed without grace suspends",
			invoiceStatus: domain.InvoiceFailed,
			subStatus:     domain.SubscriptionPendingPayment,
			wantStep:      true,
			wantTarget:    domain.SubscriptionSuspended,
		},
		{
			name:          "retried awaiting forces pending",
			invoiceStatus: domain.InvoiceAwaitingPayment,
			subStatus:     domain.SubscriptionSuspended,
			wantStep:      true,
			wantTarget:    domain.SubscriptionPendingPayment,
		},
		{
			name:          "awaiting on pending subscription needs nothing",
			invoiceStatus: domain.InvoiceAwaitingPayment,
			subStatus:     domain.SubscriptionPendingPayment,
			wantStep:      false,
		},
		{
			name:          "created requires no change",
			invoiceStatus: domain.InvoiceStatusCreated,
			subStatus:     domain.SubscriptionPendingPayment,
			wantStep:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &domain.Subscription{
				SubscriptionID: "sub-1",
				Status:         tt.subStatus,
				GracePeriodEnd: tt.grace,
			}

			step, ok := planReconciliation(tt.invoiceStatus, sub)
			assert.Equal(t, tt.wantStep, ok)
			if !tt.wantStep {
				return
			}
			assert.Equal(t, tt.wantTarget, step.target)
			assert.Equal(t, tt.wantAdvance, step.advanceCycle)
			assert.Equal(t, tt.wantClear, step.clearGrace)
		})
	}
}
