package store

import (
	"context"
	"sync"

	"attrisk/pkg/platform/audit"
)

// Memory keeps audit events in process memory for development and tests.
type Memory struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything appended so far. Test helper.
func (s *Memory) Events() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out
}
