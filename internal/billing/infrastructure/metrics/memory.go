// Package metrics provides reconciliation observability counters.
package metrics

import (
	"context"
	"sync/atomic"
)

// MemoryReconcileMetrics counts reconciliation anomalies in process memory.
type MemoryReconcileMetrics struct {
	orphanedInvoices atomic.Uint64
}

// NewMemoryReconcileMetrics creates a zeroed counter set.
func NewMemoryReconcileMetrics() *MemoryReconcileMetrics {
	return &MemoryReconcileMetrics{}
}

// RecordOrphanedInvoice counts an invoice reconciled without an owning
// subscription.
func (m *MemoryReconcileMetrics) RecordOrphanedInvoice(_ context.Context, _ string) {
	m.orphanedInvoices.Add(1)
}

// OrphanedInvoices returns the current counter value.
func (m *MemoryReconcileMetrics) OrphanedInvoices() uint64 {
	return m.orphanedInvoices.Load()
}
