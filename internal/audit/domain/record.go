package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is one entry in the audit log. Records are write-once: once
// appended they are never mutated or deleted.
type Record struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	AggregateID   string
	AggregateType string
	EventType     string
	OccurredAt    time.Time
	RecordedAt    time.Time
	UserID        string
	Payload       json.RawMessage
}
