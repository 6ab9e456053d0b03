package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/revenia/revenia/internal/audit/domain"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_records (
	id TEXT PRIMARY KEY,
	event_id TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	aggregate_type TEXT NOT NULL,
	event_type TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	recorded_at TEXT NOT NULL,
	user_id TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_audit_records_event_type ON audit_records(event_type);
CREATE INDEX IF NOT EXISTS idx_audit_records_occurred_at ON audit_records(occurred_at);
`

// EnsureSQLiteSchema creates the audit log table if it does not exist.
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, auditSchema); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

// SQLiteRepository persists the audit log in SQLite. Inserts only; nothing
// updates or deletes rows.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite audit repository.
func NewSQLiteRepository(dbConn *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: dbConn}
}

// Append stores an audit record.
func (r *SQLiteRepository) Append(ctx context.Context, record *domain.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_records (id, event_id, aggregate_id, aggregate_type, event_type, occurred_at, recorded_at, user_id, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID.String(),
		record.EventID.String(),
		record.AggregateID,
		record.AggregateType,
		record.EventType,
		record.OccurredAt.UTC().Format(time.RFC3339Nano),
		record.RecordedAt.UTC().Format(time.RFC3339Nano),
		record.UserID,
		string(record.Payload),
	)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

// ListRecent returns the most recent records, newest first.
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, aggregate_id, aggregate_type, event_type, occurred_at, recorded_at, user_id, payload
		FROM audit_records ORDER BY occurred_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByType returns the most recent records of one event type, newest first.
func (r *SQLiteRepository) ListByType(ctx context.Context, eventType string, limit int) ([]*domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, aggregate_id, aggregate_type, event_type, occurred_at, recorded_at, user_id, payload
		FROM audit_records WHERE event_type = ? ORDER BY occurred_at DESC LIMIT ?`, eventType, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// CountByType returns per-event-type counts across the whole log.
func (r *SQLiteRepository) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_type, COUNT(*) FROM audit_records GROUP BY event_type`)
	if err != nil {
		return nil, fmt.Errorf("count audit records: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("scan audit count: %w", err)
		}
		counts[eventType] = count
	}
	return counts, rows.Err()
}

func scanRecords(rows *sql.Rows) ([]*domain.Record, error) {
	var records []*domain.Record
	for rows.Next() {
		var (
			record     domain.Record
			id         string
			eventID    string
			occurredAt string
			recordedAt string
			payload    string
		)
		if err := rows.Scan(&id, &eventID, &record.AggregateID, &record.AggregateType, &record.EventType, &occurredAt, &recordedAt, &record.UserID, &payload); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		parsedID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse record id: %w", err)
		}
		parsedEventID, err := uuid.Parse(eventID)
		if err != nil {
			return nil, fmt.Errorf("parse event id: %w", err)
		}
		record.ID = parsedID
		record.EventID = parsedEventID
		record.OccurredAt, err = time.Parse(time.RFC3339Nano, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at: %w", err)
		}
		record.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		record.Payload = []byte(payload)
		records = append(records, &record)
	}
	return records, rows.Err()
}
