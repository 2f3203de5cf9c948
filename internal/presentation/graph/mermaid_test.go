package graph_test

import (
	"math"
	"strings"
	"testing"

	"github.com/aretw0/polezero/internal/presentation/graph"
	"github.com/aretw0/polezero/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		cfg      domain.Configuration
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Empty Configuration",
			cfg:  domain.Empty(),
			contains: []string{
				"quadrantChart\n",
				`x-axis "Re -1" --> "Re +1"`,
			},
			excludes: []string{"Pole 0", "Zero 0"},
		},
		{
			name: "Polar To Chart Position",
			cfg: domain.Configuration{
				Poles: []domain.ComplexPoint{domain.Point(1, 0)},
				Zeros: []domain.ComplexPoint{domain.Point(0.5, 90)},
			},
			contains: []string{
				"Pole 0: [1.000, 0.500] color: #06b6d4",
				"Zero 0: [0.500, 0.750] color: #f97316",
			},
		},
		{
			name: "Outside Unit Circle Is Clamped",
			cfg: domain.Configuration{
				Poles: []domain.ComplexPoint{domain.Point(2, 180)},
			},
			contains: []string{"Pole 0: [0.000, 0.500]"},
		},
		{
			name: "Non-Finite Points Are Skipped",
			cfg: domain.Configuration{
				Poles: []domain.ComplexPoint{domain.Point(math.NaN(), 0), domain.Point(0, 0)},
			},
			contains: []string{"Pole 1: [0.500, 0.500]"},
			excludes: []string{"Pole 0"},
		},
		{
			name: "Overlay Highlights Selection",
			cfg: domain.Configuration{
				Poles: []domain.ComplexPoint{domain.Point(0, 0)},
				Zeros: []domain.ComplexPoint{domain.Point(0, 0)},
			},
			overlay: &graph.Overlay{Kind: domain.Zero, Index: 0},
			contains: []string{
				"Pole 0: [0.500, 0.500] color: #06b6d4",
				"Zero 0: [0.500, 0.500] color: #ffeb3b",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.cfg, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
		})
	}
}
