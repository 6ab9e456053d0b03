package application

import (
	"context"

	"github.com/revenia/revenia/internal/audit/domain"
)

// Service exposes read access to the audit log for admin tooling.
type Service struct {
	records domain.Repository
}

// NewService creates a new audit log service.
func NewService(records domain.Repository) *Service {
	return &Service{records: records}
}

// RecentEvents returns the most recent audit records.
func (s *Service) RecentEvents(ctx context.Context, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.records.ListRecent(ctx, limit)
}

// EventsByType returns the most recent audit records of one event type.
func (s *Service) EventsByType(ctx context.Context, eventType string, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.records.ListByType(ctx, eventType, limit)
}

// Metrics returns per-event-type counts across the whole log.
func (s *Service) Metrics(ctx context.Context) (map[string]int, error) {
	return s.records.CountByType(ctx)
}
