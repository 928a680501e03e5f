// Package history persists the input/output tuple of every completed scoring
// request. Records are append-only: the core never updates or deletes them.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"attrisk/internal/scoring"
)

// Record is one immutable scoring history entry. ID and CreatedAt are
// assigned by the server at append time.
type Record struct {
	ID        uuid.UUID
	CreatedAt time.Time

	Input  scoring.EmployeeRecord
	Result scoring.ScoreResult
}

// Store is the append-only history log.
type Store interface {
	// Append persists one record. The caller treats a failed append as a
	// failed request even though scoring already succeeded.
	Append(ctx context.Context, record *Record) error
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
}
