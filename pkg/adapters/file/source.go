package file

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Source implements ports.ConfigSource over a single file holding the raw
// encoded configuration. The CLI uses it to keep a configuration between runs.
type Source struct {
	Path string
}

// NewSource creates a Source backed by path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// Load returns the file content, or "" when the file does not exist.
func (s *Source) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save replaces the file content with raw.
func (s *Source) Save(ctx context.Context, raw string) error {
	return writeAtomic(s.Path, []byte(raw+"\n"))
}
