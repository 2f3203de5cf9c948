package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/polezero/pkg/domain"
)

// ErrInvalidSessionID is returned for IDs that are empty or would escape the base directory.
var ErrInvalidSessionID = errors.New("invalid session id")

// Store implements ports.DraftStore using the local filesystem.
// It stores drafts as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".polezero/drafts".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".polezero", "drafts")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(sessionID string) (string, error) {
	if sessionID == "" || strings.ContainsAny(sessionID, `/\`) || strings.Contains(sessionID, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSessionID, sessionID)
	}
	return filepath.Join(s.BasePath, sessionID+".json"), nil
}

// Save persists the draft to a JSON file atomically.
func (s *Store) Save(ctx context.Context, sessionID string, draft domain.Configuration) error {
	path, err := s.path(sessionID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	return writeAtomic(path, data)
}

// Load retrieves the draft from its JSON file.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Configuration, error) {
	path, err := s.path(sessionID)
	if err != nil {
		return domain.Configuration{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Configuration{}, domain.ErrSessionNotFound
		}
		return domain.Configuration{}, fmt.Errorf("failed to read draft file: %w", err)
	}

	var draft domain.Configuration
	if err := json.Unmarshal(data, &draft); err != nil {
		return domain.Configuration{}, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return draft.Clone(), nil
}

// Delete removes the draft file.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	path, err := s.path(sessionID)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete draft file: %w", err)
	}
	return nil
}

// List returns all open draft IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	sessions := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, tmpPrefix) {
			continue
		}
		sessions = append(sessions, strings.TrimSuffix(name, ".json"))
	}
	return sessions, nil
}
