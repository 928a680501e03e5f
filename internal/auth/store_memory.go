package auth

import (
	"context"
	"sync"

	"attrisk/pkg/platform/sentinel"
)

// InMemoryStore keeps credentials in process memory for development and
// tests, and for the fixed-identity deployment mode where a single bootstrap
// credential comes from configuration.
type InMemoryStore struct {
	mu    sync.RWMutex
	creds map[string]Credential
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{creds: make(map[string]Credential)}
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cred, ok := s.creds[username]; ok {
		return cred, nil
	}
	return Credential{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Upsert(_ context.Context, cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[cred.Username] = cred
	return nil
}
