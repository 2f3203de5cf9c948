package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/polezero"
	"github.com/aretw0/polezero/internal/logging"
	"github.com/aretw0/polezero/internal/metrics"
	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes an Editor over HTTP: server-rendered pages for browsers and
// a JSON API under /api.
type Server struct {
	Editor  *polezero.Editor
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics mounts /metrics for the given recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Server) {
		s.Metrics = r
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the editor.
func NewHandler(editor *polezero.Editor, opts ...Option) http.Handler {
	s := &Server{
		Editor: editor,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	pagePath := editor.Publisher().Path
	if pagePath == "" {
		pagePath = "/"
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.GetHealth)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Get(pagePath, s.GetPage)
	r.Route(strings.TrimSuffix(pagePath, "/")+"/editor", func(r chi.Router) {
		r.Post("/", s.PostOpenEditor)
		r.Get("/{id}", s.GetEditor)
		r.Post("/{id}/{action}", s.PostEditorAction)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.GetConfig)
		r.Get("/drafts", s.ListDrafts)
		r.Post("/drafts", s.CreateDraft)
		r.Get("/drafts/{id}", s.GetDraft)
		r.Delete("/drafts/{id}", s.DeleteDraft)
		r.Post("/drafts/{id}/points", s.AddPoint)
		r.Put("/drafts/{id}/points/{kind}/{index}", s.SetCoordinate)
		r.Delete("/drafts/{id}/points/{kind}/{index}", s.RemovePoint)
		r.Post("/drafts/{id}/publish", s.PublishDraft)
	})

	return enableCORS(r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownKind), errors.Is(err, domain.ErrUnknownAxis),
		errors.Is(err, domain.ErrNonFinite), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, codec.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("Request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
