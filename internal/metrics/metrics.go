// Package metrics exposes Prometheus collectors for the editor.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder groups the editor's collectors on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	decodes   *prometheus.CounterVec
	edits     *prometheus.CounterVec
	publishes *prometheus.CounterVec
	sessions  *prometheus.CounterVec
}

// New creates a Recorder with its own registry, including Go and process collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		decodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polezero_decodes_total",
				Help: "Configurations hydrated from a source, by outcome reason (none = valid).",
			},
			[]string{"reason"},
		),
		edits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polezero_edits_total",
				Help: "Draft edits by operation, kind and result.",
			},
			[]string{"op", "kind", "result"},
		),
		publishes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polezero_publishes_total",
				Help: "Published configurations, by whether they pass validation.",
			},
			[]string{"valid"},
		),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polezero_editor_sessions_total",
				Help: "Editor sessions opened and closed.",
			},
			[]string{"event"},
		),
	}
	r.registry.MustRegister(
		r.decodes, r.edits, r.publishes, r.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Decode counts a hydration. reason is "none" for a valid configuration.
func (r *Recorder) Decode(reason string) {
	if r == nil {
		return
	}
	r.decodes.WithLabelValues(reason).Inc()
}

// Edit counts a draft edit.
func (r *Recorder) Edit(op, kind string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.edits.WithLabelValues(op, kind, result).Inc()
}

// Publish counts a publish.
func (r *Recorder) Publish(valid bool) {
	if r == nil {
		return
	}
	label := "true"
	if !valid {
		label = "false"
	}
	r.publishes.WithLabelValues(label).Inc()
}

// SessionOpened counts an editor being opened.
func (r *Recorder) SessionOpened() {
	if r == nil {
		return
	}
	r.sessions.WithLabelValues("open").Inc()
}

// SessionClosed counts an editor being closed, published or discarded.
func (r *Recorder) SessionClosed(event string) {
	if r == nil {
		return
	}
	r.sessions.WithLabelValues(event).Inc()
}
