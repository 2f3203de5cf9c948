package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/polezero/pkg/adapters/memory"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/go-chi/chi/v5"
)

type row struct {
	Index     int
	Magnitude string
	Phase     string
	Warn      bool
}

type section struct {
	Title string
	Kind  domain.Kind
	Rows  []row
}

type pageData struct {
	Param    string
	Raw      string
	Sections []section
	Editor   string
	Action   string
	Return   string
	Strict   bool
	Error    string
	Limits   map[string]float64
}

func sections(cfg domain.Configuration) []section {
	build := func(title string, kind domain.Kind, points []domain.ComplexPoint) section {
		sec := section{Title: title, Kind: kind}
		for i, p := range points {
			sec.Rows = append(sec.Rows, row{
				Index:     i,
				Magnitude: formatInput(p.Magnitude),
				Phase:     formatInput(p.Phase),
				Warn:      !p.InRange(),
			})
		}
		return sec
	}
	return []section{
		build("Poles", domain.Pole, cfg.Poles),
		build("Zeros", domain.Zero, cfg.Zeros),
	}
}

// formatInput renders a coordinate for a number input; NaN is an empty field.
func formatInput(f float64) string {
	if !domain.Point(f, 0).Finite() {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

var limits = map[string]float64{
	"MagMin":  domain.MagnitudeMin,
	"MagMax":  domain.MagnitudeMax,
	"MagStep": domain.MagnitudeStep,
	"PhMin":   domain.PhaseMin,
	"PhMax":   domain.PhaseMax,
	"PhStep":  domain.PhaseStep,
}

// GetPage renders the consuming page: the current configuration and the
// button that opens the editor.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	publisher := s.Editor.Publisher()
	cfg := s.Editor.Hydrate(r.Context(), s.requestSource(r))

	s.render(w, http.StatusOK, "page", pageData{
		Param:    publisher.Param,
		Raw:      publisher.Read(r.URL),
		Sections: sections(cfg),
		Editor:   s.editorBase(),
		Return:   r.URL.RequestURI(),
		Limits:   limits,
	})
}

// PostOpenEditor opens an editor from the posted configuration and redirects to it.
func (s *Server) PostOpenEditor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	publisher := s.Editor.Publisher()
	raw := r.PostForm.Get(publisher.Param)

	id, _, err := s.Editor.Open(r.Context(), memory.NewSource(raw))
	if err != nil {
		s.Logger.Error("Open editor failed", "err", err)
		http.Error(w, "Failed to open editor", http.StatusInternalServerError)
		return
	}

	target := s.editorBase() + "/" + id
	if ret := s.safeReturn(r.PostForm.Get("return")); ret != "" {
		target += "?return=" + url.QueryEscape(ret)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// GetEditor renders the editor of an open draft.
func (s *Server) GetEditor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cfg, err := s.Editor.Draft(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "Editor not found", http.StatusNotFound)
			return
		}
		s.Logger.Error("Load draft failed", "session_id", id, "err", err)
		http.Error(w, "Failed to load editor", http.StatusInternalServerError)
		return
	}

	s.render(w, http.StatusOK, "editor", pageData{
		Param:    s.Editor.Publisher().Param,
		Sections: sections(cfg),
		Action:   s.editorBase() + "/" + id,
		Return:   s.safeReturn(r.URL.Query().Get("return")),
		Strict:   s.Editor.Strict(),
		Error:    r.URL.Query().Get("error"),
		Limits:   limits,
	})
}

// PostEditorAction applies one form action: add, set, remove, publish or close.
func (s *Server) PostEditorAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	action := chi.URLParam(r, "action")
	ctx := r.Context()

	form, err := decodeForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ret := s.safeReturn(form.Return)

	switch action {
	case "publish":
		location, err := s.Editor.Publish(ctx, id, s.pageSource())
		if err != nil {
			s.redirectEditor(w, r, id, ret, err)
			return
		}
		http.Redirect(w, r, location, http.StatusSeeOther)
		return

	case "close":
		if err := s.Editor.Close(ctx, id); err != nil {
			s.Logger.Warn("Close editor failed", "session_id", id, "err", err)
		}
		if ret == "" {
			ret = s.Editor.Publisher().Path
		}
		http.Redirect(w, r, ret, http.StatusSeeOther)
		return

	case "add":
		err = s.applyAdd(r, id, form)
	case "set":
		err = s.applySet(r, id, form)
	case "remove":
		err = s.applyRemove(r, id, form)
	default:
		http.Error(w, "Unknown action", http.StatusNotFound)
		return
	}

	s.redirectEditor(w, r, id, ret, err)
}

func (s *Server) applyAdd(r *http.Request, id string, form editForm) error {
	kind, err := form.kind()
	if err != nil {
		return err
	}
	_, err = s.Editor.AddPoint(r.Context(), id, kind)
	return err
}

func (s *Server) applySet(r *http.Request, id string, form editForm) error {
	kind, err := form.kind()
	if err != nil {
		return err
	}
	index, err := form.index()
	if err != nil {
		return err
	}
	if form.Magnitude != nil {
		if _, err := s.Editor.SetCoordinate(r.Context(), id, kind, index, domain.Magnitude, *form.Magnitude); err != nil {
			return err
		}
	}
	if form.Phase != nil {
		if _, err := s.Editor.SetCoordinate(r.Context(), id, kind, index, domain.Phase, *form.Phase); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) applyRemove(r *http.Request, id string, form editForm) error {
	kind, err := form.kind()
	if err != nil {
		return err
	}
	index, err := form.index()
	if err != nil {
		return err
	}
	_, err = s.Editor.RemovePoint(r.Context(), id, kind, index)
	return err
}

// redirectEditor sends the browser back to the editor, carrying a
// non-blocking notice when the action failed.
func (s *Server) redirectEditor(w http.ResponseWriter, r *http.Request, id, ret string, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Editor not found", http.StatusNotFound)
		return
	}

	q := url.Values{}
	if ret != "" {
		q.Set("return", ret)
	}
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			s.Logger.Error("Editor action failed", "session_id", id, "err", err)
		}
		q.Set("error", err.Error())
	}

	target := s.editorBase() + "/" + id
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) requestSource(r *http.Request) *memory.Source {
	return memory.NewSource(s.Editor.Publisher().Read(r.URL))
}

func (s *Server) editorBase() string {
	return strings.TrimSuffix(s.Editor.Publisher().Path, "/") + "/editor"
}

// safeReturn only accepts local paths under the page, so "return" cannot be
// used as an open redirect.
func (s *Server) safeReturn(ret string) string {
	if ret == "" {
		return ""
	}
	u, err := url.Parse(ret)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	if page := s.Editor.Publisher().Path; page != "" && u.Path != page {
		return ""
	}
	return ret
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.Logger.Error("Template render failed", "template", name, "err", err)
	}
}
