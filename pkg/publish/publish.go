// Package publish turns a configuration into the navigation target that hands
// it to the consuming page, and reads it back from a URL.
package publish

import (
	"net/url"

	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
)

const (
	// DefaultPath is the page that consumes a published configuration.
	DefaultPath = "/freq-response"
	// DefaultParam is the query parameter carrying the encoded configuration.
	DefaultParam = "config"
)

// Publisher builds navigation targets of the form <Path>?<Param>=<json>.
type Publisher struct {
	Path  string
	Param string
}

// New returns a Publisher with the default path and parameter.
func New() Publisher {
	return Publisher{Path: DefaultPath, Param: DefaultParam}
}

// WithDefaults fills an empty Path or Param with the defaults.
func (p Publisher) WithDefaults() Publisher {
	return Publisher{Path: p.path(), Param: p.param()}
}

// Publish encodes c and returns the navigation target. The target carries no
// other query parameters: it fully replaces the previous state.
func (p Publisher) Publish(c domain.Configuration) string {
	return p.Target(codec.Encode(c))
}

// Target builds the navigation target for an already encoded value.
func (p Publisher) Target(encoded string) string {
	q := url.Values{}
	q.Set(p.param(), encoded)
	return p.path() + "?" + q.Encode()
}

// Read returns the raw parameter value of u, or "" when absent.
func (p Publisher) Read(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Query().Get(p.param())
}

// Load decodes the configuration carried by u.
func (p Publisher) Load(u *url.URL) domain.Configuration {
	return codec.Decode(p.Read(u))
}

func (p Publisher) path() string {
	if p.Path == "" {
		return DefaultPath
	}
	return p.Path
}

func (p Publisher) param() string {
	if p.Param == "" {
		return DefaultParam
	}
	return p.Param
}
