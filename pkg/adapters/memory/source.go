package memory

import (
	"context"
	"sync"
)

// Source implements ports.ConfigSource over a string held in memory.
// It stands in for the browser location in tests and embedded use.
type Source struct {
	mu  sync.RWMutex
	raw string
}

// NewSource creates a Source holding raw.
func NewSource(raw string) *Source {
	return &Source{raw: raw}
}

// Load returns the held value.
func (s *Source) Load(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw, nil
}

// Save replaces the held value.
func (s *Source) Save(ctx context.Context, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	return nil
}
