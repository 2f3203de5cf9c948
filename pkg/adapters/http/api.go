package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aretw0/polezero/pkg/adapters/memory"
	"github.com/aretw0/polezero/pkg/adapters/query"
	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/go-chi/chi/v5"
)

var errBadRequest = errors.New("bad request")

// ConfigResponse describes a decoded configuration.
type ConfigResponse struct {
	Config  domain.Configuration `json:"config"`
	Encoded string               `json:"encoded"`
	Valid   bool                 `json:"valid"`
	Error   string               `json:"error,omitempty"`
}

// DraftResponse is an open editor session.
type DraftResponse struct {
	ID     string               `json:"id"`
	Config domain.Configuration `json:"config"`
}

// PublishResponse carries the navigation target of a publish.
type PublishResponse struct {
	Location string `json:"location"`
	Encoded  string `json:"encoded"`
}

// CreateDraftRequest opens an editor. Config is the raw encoded value.
type CreateDraftRequest struct {
	Config string `json:"config"`
}

// AddPointRequest appends (0, 0) to a sequence.
type AddPointRequest struct {
	Kind string `json:"kind"`
}

// SetCoordinateRequest sets one coordinate. Value takes precedence over
// Input; Input is raw text that becomes NaN when not numeric.
type SetCoordinateRequest struct {
	Axis  string   `json:"axis"`
	Value *float64 `json:"value,omitempty"`
	Input *string  `json:"input,omitempty"`
}

// GetConfig handles GET /api/config. It reports the decode outcome that a
// page would silently apply.
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	publisher := s.Editor.Publisher()
	raw := publisher.Read(r.URL)

	cfg, err := codec.DecodeStrict(raw)
	resp := ConfigResponse{Config: cfg, Valid: err == nil}
	if err != nil {
		resp.Error = err.Error()
	}
	resp.Encoded = codec.Encode(cfg)
	s.writeJSON(w, http.StatusOK, resp)
}

// ListDrafts handles GET /api/drafts.
func (s *Server) ListDrafts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Editor.Sessions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"drafts": ids})
}

// CreateDraft handles POST /api/drafts. The configuration comes from the JSON
// body or, when the body is empty, from the query parameter.
func (s *Server) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var body CreateDraftRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, fmt.Errorf("%w: invalid request body", errBadRequest))
			return
		}
	}
	raw := body.Config
	if raw == "" {
		raw = s.Editor.Publisher().Read(r.URL)
	}

	id, cfg, err := s.Editor.Open(r.Context(), memory.NewSource(raw))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/drafts/"+id)
	s.writeJSON(w, http.StatusCreated, DraftResponse{ID: id, Config: cfg})
}

// GetDraft handles GET /api/drafts/{id}.
func (s *Server) GetDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cfg, err := s.Editor.Draft(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, DraftResponse{ID: id, Config: cfg})
}

// DeleteDraft handles DELETE /api/drafts/{id}: closing without publishing.
func (s *Server) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.Editor.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddPoint handles POST /api/drafts/{id}/points.
func (s *Server) AddPoint(w http.ResponseWriter, r *http.Request) {
	var body AddPointRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid request body", errBadRequest))
		return
	}
	kind, err := domain.ParseKind(body.Kind)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	cfg, err := s.Editor.AddPoint(r.Context(), id, kind)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, DraftResponse{ID: id, Config: cfg})
}

// SetCoordinate handles PUT /api/drafts/{id}/points/{kind}/{index}.
func (s *Server) SetCoordinate(w http.ResponseWriter, r *http.Request) {
	kind, index, err := pointParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var body SetCoordinateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid request body", errBadRequest))
		return
	}
	axis, err := domain.ParseAxis(body.Axis)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	var cfg domain.Configuration
	switch {
	case body.Value != nil:
		cfg, err = s.Editor.SetValue(r.Context(), id, kind, index, axis, *body.Value)
	case body.Input != nil:
		cfg, err = s.Editor.SetCoordinate(r.Context(), id, kind, index, axis, *body.Input)
	default:
		err = fmt.Errorf("%w: value or input is required", errBadRequest)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, DraftResponse{ID: id, Config: cfg})
}

// RemovePoint handles DELETE /api/drafts/{id}/points/{kind}/{index}.
func (s *Server) RemovePoint(w http.ResponseWriter, r *http.Request) {
	kind, index, err := pointParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	cfg, err := s.Editor.RemovePoint(r.Context(), id, kind, index)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, DraftResponse{ID: id, Config: cfg})
}

// PublishDraft handles POST /api/drafts/{id}/publish.
func (s *Server) PublishDraft(w http.ResponseWriter, r *http.Request) {
	src := s.pageSource()
	location, err := s.Editor.Publish(r.Context(), chi.URLParam(r, "id"), src)
	if err != nil {
		s.writeError(w, err)
		return
	}
	encoded, _ := src.Load(r.Context())
	s.writeJSON(w, http.StatusOK, PublishResponse{Location: location, Encoded: encoded})
}

// pageSource is the location of the consuming page, without configuration.
func (s *Server) pageSource() *query.Source {
	publisher := s.Editor.Publisher()
	return query.NewSource(&url.URL{Path: publisher.Path}, publisher)
}

func pointParams(r *http.Request) (domain.Kind, int, error) {
	kind, err := domain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", 0, err
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return "", 0, fmt.Errorf("%w: index must be an integer", errBadRequest)
	}
	return kind, index, nil
}
