package infrastructure

import (
	"context"
	"sync"

	"github.com/revenia/revenia/internal/audit/domain"
)

// MemoryRepository is an in-memory append-only audit log.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*domain.Record
}

// NewMemoryRepository creates an empty audit log.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Append adds a record to the log.
func (r *MemoryRepository) Append(_ context.Context, record *domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

// ListRecent returns up to limit records, newest first.
func (r *MemoryRepository) ListRecent(_ context.Context, limit int) ([]*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tail(len(r.records), limit, func(*domain.Record) bool { return true }), nil
}

// ListByType returns up to limit records of one event type, newest first.
func (r *MemoryRepository) ListByType(_ context.Context, eventType string, limit int) ([]*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tail(len(r.records), limit, func(rec *domain.Record) bool {
		return rec.EventType == eventType
	}), nil
}

// CountByType returns per-event-type counts.
func (r *MemoryRepository) CountByType(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, rec := range r.records {
		counts[rec.EventType]++
	}
	return counts, nil
}

func (r *MemoryRepository) tail(from, limit int, match func(*domain.Record) bool) []*domain.Record {
	out := make([]*domain.Record, 0, limit)
	for i := from - 1; i >= 0 && len(out) < limit; i-- {
		if match(r.records[i]) {
			out = append(out, r.records[i])
		}
	}
	return out
}
