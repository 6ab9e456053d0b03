package metrics

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const orphanedInvoicesKey = "revenia:billing:reconcile:orphaned_invoices"

// RedisReconcileMetrics keeps reconciliation counters in Redis so they
// survive restarts and are visible across processes. Counter failures are
// logged and swallowed: observability must not fail billing operations.
type RedisReconcileMetrics struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisReconcileMetrics creates a Redis-backed counter set.
func NewRedisReconcileMetrics(client *redis.Client, logger *slog.Logger) *RedisReconcileMetrics {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisReconcileMetrics{client: client, logger: logger}
}

// RecordOrphanedInvoice counts an invoice reconciled without an owning
// subscription.
func (m *RedisReconcileMetrics) RecordOrphanedInvoice(ctx context.Context, invoiceID string) {
	if err := m.client.Incr(ctx, orphanedInvoicesKey).Err(); err != nil {
		m.logger.Error("failed to record orphaned invoice",
			"invoice_id", invoiceID,
			"error", err,
		)
	}
}

// OrphanedInvoices returns the current counter value.
func (m *RedisReconcileMetrics) OrphanedInvoices(ctx context.Context) (uint64, error) {
	n, err := m.client.Get(ctx, orphanedInvoicesKey).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
