package tui

import (
	"bytes"
	"math"
	"testing"

	"github.com/aretw0/polezero/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	assert.Equal(t, "_No poles or zeros._\n", Markdown(domain.Empty()))

	md := Markdown(domain.Configuration{
		Poles: []domain.ComplexPoint{domain.Point(0.9, 45), domain.Point(math.NaN(), 0)},
		Zeros: []domain.ComplexPoint{domain.Point(1.5, 0)},
	})
	assert.Contains(t, md, "### Poles")
	assert.Contains(t, md, "| 0 | 0.9 | 45 |  |")
	assert.Contains(t, md, "| 1 | NaN | 0 | not a number |")
	assert.Contains(t, md, "### Zeros")
	assert.Contains(t, md, "| 0 | 1.5 | 0 | out of range |")
}

func TestMarkdown_SkipsEmptySequence(t *testing.T) {
	md := Markdown(domain.Configuration{Zeros: []domain.ComplexPoint{domain.Point(0, 0)}})
	assert.NotContains(t, md, "Poles")
	assert.Contains(t, md, "### Zeros")
}

func TestRenderer_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	cfg := domain.Configuration{Poles: []domain.ComplexPoint{domain.Point(0.5, 10)}}
	out, err := NewRenderer(&buf).Configuration(cfg)
	require.NoError(t, err)
	assert.Equal(t, Markdown(cfg), out)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_| \\___/_\\___/__\\___|_| \\___/")
}
