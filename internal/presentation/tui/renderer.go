package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/polezero/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns markdown into terminal output.
type Renderer struct {
	render func(string) (string, error)
}

// NewRenderer returns a Renderer for w. Terminals get glamour styling; any
// other writer receives the markdown unchanged.
func NewRenderer(w io.Writer) *Renderer {
	if !IsTerminal(w) {
		return &Renderer{render: func(md string) (string, error) { return md, nil }}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return &Renderer{render: func(md string) (string, error) { return md, nil }}
	}
	return &Renderer{render: r.Render}
}

// Render renders markdown.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.render(markdown)
}

// Configuration renders cfg as one table per non-empty sequence.
func (r *Renderer) Configuration(cfg domain.Configuration) (string, error) {
	return r.render(Markdown(cfg))
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Markdown formats cfg as markdown tables.
func Markdown(cfg domain.Configuration) string {
	if cfg.IsEmpty() {
		return "_No poles or zeros._\n"
	}

	var sb strings.Builder
	table := func(title string, points []domain.ComplexPoint) {
		if len(points) == 0 {
			return
		}
		fmt.Fprintf(&sb, "### %s\n\n", title)
		sb.WriteString("| # | Mag | Phase (Deg) | |\n|---|---|---|---|\n")
		for i, p := range points {
			note := ""
			switch {
			case !p.Finite():
				note = "not a number"
			case !p.InRange():
				note = "out of range"
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", i, formatValue(p.Magnitude), formatValue(p.Phase), note)
		}
		sb.WriteString("\n")
	}
	table("Poles", cfg.Poles)
	table("Zeros", cfg.Zeros)
	return sb.String()
}

func formatValue(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
