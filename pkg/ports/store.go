package ports

import (
	"context"

	"github.com/aretw0/polezero/pkg/domain"
)

// DraftStore persists configurations being edited, keyed by session ID.
// A draft exists only while its editor is open.
type DraftStore interface {
	// Save persists the draft for a given session ID.
	Save(ctx context.Context, sessionID string, draft domain.Configuration) error

	// Load retrieves the draft for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (domain.Configuration, error)

	// Delete removes the draft for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of open drafts.
	List(ctx context.Context) ([]string, error)
}
