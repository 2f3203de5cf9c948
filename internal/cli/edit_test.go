package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/polezero"
	"github.com/aretw0/polezero/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runEdit(t *testing.T, editor *polezero.Editor, src *memory.Source, script string) string {
	t.Helper()
	var out bytes.Buffer
	err := RunEdit(context.Background(), editor, src, EditOptions{
		In:  strings.NewReader(script),
		Out: &out,
	})
	require.NoError(t, err)
	return out.String()
}

func TestRunEdit_Publish(t *testing.T) {
	editor := polezero.New()
	src := memory.NewSource(`{"poles":[[0.9,45]],"zeros":[]}`)

	out := runEdit(t, editor, src, strings.Join([]string{
		"show",
		"add zero",
		"set zero 0 mag 0.5",
		"set zero 0 phase -30",
		"add pole",
		"rm pole 1",
		"rm pole 7",
		"frobnicate",
		"publish",
		"show",
	}, "\n"))

	raw, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"poles":[[0.9,45]],"zeros":[[0.5,-30]]}`, raw)

	assert.Contains(t, out, "/freq-response?config=")
	assert.Contains(t, out, "Error: index out of range")
	assert.Contains(t, out, `Error: unknown command: "frobnicate"`)

	ids, err := editor.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids, "publish ends the session")
}

func TestRunEdit_CloseLeavesSourceUntouched(t *testing.T) {
	editor := polezero.New()
	src := memory.NewSource(`{"poles":[],"zeros":[[1,0]]}`)

	out := runEdit(t, editor, src, "rm zero 0\nclose\n")
	assert.Contains(t, out, "Closed without publishing.")

	raw, _ := src.Load(context.Background())
	assert.Equal(t, `{"poles":[],"zeros":[[1,0]]}`, raw)

	ids, err := editor.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRunEdit_EndOfInputDiscards(t *testing.T) {
	editor := polezero.New()
	src := memory.NewSource("")

	out := runEdit(t, editor, src, "add pole\nplot\n")
	assert.Contains(t, out, "quadrantChart")
	assert.Contains(t, out, "Pole 0: [0.500, 0.500]")

	raw, _ := src.Load(context.Background())
	assert.Empty(t, raw)

	ids, err := editor.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRunEdit_NonNumericInput(t *testing.T) {
	editor := polezero.New()
	src := memory.NewSource("")

	runEdit(t, editor, src, "add pole\nset pole 0 mag abc\npublish\n")

	raw, _ := src.Load(context.Background())
	assert.Equal(t, `{"poles":[[null,0]],"zeros":[]}`, raw)

	strict := polezero.New(polezero.WithStrictValues(true))
	out := runEdit(t, strict, memory.NewSource(""), "add pole\nset pole 0 mag abc\nclose\n")
	assert.Contains(t, out, "Error: coordinate is not a finite number")
}

func TestRunEdit_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	editor := polezero.New()
	var out bytes.Buffer
	err := RunEdit(ctx, editor, memory.NewSource(""), EditOptions{In: blockingReader{}, Out: &out})
	assert.ErrorIs(t, err, context.Canceled)

	ids, _ := editor.Sessions(context.Background())
	assert.Empty(t, ids)
}

type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	select {}
}
