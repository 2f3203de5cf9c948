package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/polezero/pkg/domain"
)

// Overlay highlights one point of the plot, e.g. the row being edited.
type Overlay struct {
	Kind  domain.Kind
	Index int
}

const (
	poleColor     = "#06b6d4"
	zeroColor     = "#f97316"
	selectedColor = "#ffeb3b"
)

// GenerateMermaid produces a Mermaid quadrantChart plotting the configuration
// on the z-plane, with the unit circle inscribed in the chart.
// Poles and zeros are coloured like the editor buttons. Points with a
// non-finite coordinate are left out; points outside the unit circle are
// clamped to the chart border.
func GenerateMermaid(cfg domain.Configuration, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("quadrantChart\n")
	sb.WriteString("    title Pole-Zero Plot\n")
	sb.WriteString("    x-axis \"Re -1\" --> \"Re +1\"\n")
	sb.WriteString("    y-axis \"Im -1\" --> \"Im +1\"\n")

	write := func(kind domain.Kind, label, color string, points []domain.ComplexPoint) {
		for i, p := range points {
			if !p.Finite() {
				continue
			}
			x, y := chartPosition(p)
			c := color
			if overlay != nil && overlay.Kind == kind && overlay.Index == i {
				c = selectedColor
			}
			sb.WriteString(fmt.Sprintf("    %s %d: [%s, %s] color: %s, radius: 6\n",
				label, i, formatCoord(x), formatCoord(y), c))
		}
	}
	write(domain.Pole, "Pole", poleColor, cfg.Poles)
	write(domain.Zero, "Zero", zeroColor, cfg.Zeros)

	return sb.String()
}

// chartPosition maps a polar point to the unit square used by quadrantChart.
func chartPosition(p domain.ComplexPoint) (float64, float64) {
	rad := p.Phase * math.Pi / 180
	re := p.Magnitude * math.Cos(rad)
	im := p.Magnitude * math.Sin(rad)
	return clamp((re + 1) / 2), clamp((im + 1) / 2)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
