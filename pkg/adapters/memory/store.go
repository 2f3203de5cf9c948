package memory

import (
	"context"
	"sync"

	"github.com/aretw0/polezero/pkg/domain"
)

// Store implements ports.DraftStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Configuration
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Configuration),
	}
}

// Save persists the draft in memory.
func (s *Store) Save(ctx context.Context, sessionID string, draft domain.Configuration) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := draft.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the draft from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.data[sessionID]
	if !ok {
		return domain.Configuration{}, domain.ErrSessionNotFound
	}

	// Copy on read so callers can't mutate the stored slices
	return draft.Clone(), nil
}

// Delete removes the draft.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns open drafts.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
