package history

import (
	"context"
	"fmt"
	"sync"
)

// InMemory keeps history in process memory. It backs development runs and
// tests; production wiring uses the PostgreSQL store.
type InMemory struct {
	mu      sync.RWMutex
	records []*Record
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, record *Record) error {
	if record == nil {
		return fmt.Errorf("history record is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *record
	s.records = append(s.records, &stored)
	return nil
}

func (s *InMemory) ListRecent(_ context.Context, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]*Record, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		copied := *s.records[i]
		out = append(out, &copied)
	}
	return out, nil
}

// Len reports the number of stored records. Test helper.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
