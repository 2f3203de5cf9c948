package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the polezero banner to w, coloured when w supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  ___     _", "#22d3ee"},
		{" | _ \\___| |___ ___ ___ _ _ ___", "#06b6d4"},
		{" |  _/ _ \\ / -_)_ / -_) '_/ _ \\", "#0ea5e9"},
		{" |_| \\___/_\\___/__\\___|_| \\___/", "#f97316"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
