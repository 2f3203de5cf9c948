// Package query adapts a page URL to ports.ConfigSource. It plays the role of
// the browser location: Load reads the configuration parameter and Save
// rewrites the URL the page navigates to.
package query

import (
	"context"
	"net/url"
	"sync"

	"github.com/aretw0/polezero/pkg/publish"
)

// Source implements ports.ConfigSource over a URL.
type Source struct {
	mu        sync.RWMutex
	publisher publish.Publisher
	location  *url.URL
}

// NewSource wraps a copy of u. The publisher decides which parameter holds the
// configuration and which path a Save navigates to. When the publisher has no
// path, the current path of u is kept.
func NewSource(u *url.URL, publisher publish.Publisher) *Source {
	location := &url.URL{}
	if u != nil {
		copied := *u
		location = &copied
	}
	if publisher.Path == "" {
		publisher.Path = location.Path
	}
	return &Source{publisher: publisher, location: location}
}

// Parse builds a Source from a raw URL string.
func Parse(raw string, publisher publish.Publisher) (*Source, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return NewSource(u, publisher), nil
}

// Load returns the raw parameter value, or "" when absent.
func (s *Source) Load(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.publisher.Read(s.location), nil
}

// Save replaces the location with the navigation target for raw. Other query
// parameters are dropped: a publish fully supersedes the previous state.
func (s *Source) Save(ctx context.Context, raw string) error {
	next, err := url.Parse(s.publisher.Target(raw))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next.Scheme = s.location.Scheme
	next.Host = s.location.Host
	s.location = next
	return nil
}

// Location returns the current URL as a string.
func (s *Source) Location() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.location.String()
}
