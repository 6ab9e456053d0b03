package domain

import "context"

// Repository defines access to the append-only audit log.
type Repository interface {
	Append(ctx context.Context, record *Record) error
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
	ListByType(ctx context.Context, eventType string, limit int) ([]*Record, error)
	CountByType(ctx context.Context) (map[string]int, error)
}
