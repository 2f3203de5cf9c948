package ports

import "context"

// ConfigSource is the external configuration store the editor hydrates from
// and publishes to. Values are the raw encoded configuration.
type ConfigSource interface {
	// Load returns the raw encoded configuration, or "" when none is set.
	Load(ctx context.Context) (string, error)

	// Save replaces the published configuration with raw.
	Save(ctx context.Context, raw string) error
}
