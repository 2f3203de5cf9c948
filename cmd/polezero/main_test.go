package main

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	httpAdapter "github.com/aretw0/polezero/pkg/adapters/http"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParsePoints(t *testing.T) {
	points, err := parsePoints([]string{"0.9,45", " 1 , -180 "})
	require.NoError(t, err)
	assert.Equal(t, []domain.ComplexPoint{domain.Point(0.9, 45), domain.Point(1, -180)}, points)

	_, err = parsePoints([]string{"0.9"})
	assert.Error(t, err)
	_, err = parsePoints([]string{"x,1"})
	assert.Error(t, err)
}

func TestLinkCommand(t *testing.T) {
	stdout, stderr, err := execute(t, "", "link", "--base", "http://localhost:8080", "--pole", "0.9,45", "--zero", "1.5,0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "outside the editor ranges")

	u, err := url.Parse(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", u.Host)
	assert.Equal(t, "/freq-response", u.Path)
	assert.Equal(t, `{"poles":[[0.9,45]],"zeros":[[1.5,0]]}`, u.Query().Get("config"))
}

func TestDecodeCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, `{"poles":[],"zeros":[[1,90]]}`, "decode", "--format", "json")
	require.NoError(t, err)

	var resp httpAdapter.ConfigResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, []domain.ComplexPoint{domain.Point(1, 90)}, resp.Config.Zeros)
}

func TestDecodeCommand_InvalidFallsBack(t *testing.T) {
	stdout, stderr, err := execute(t, "", "decode", "--format", "table", `{"poles":"nope","zeros":[]}`)
	require.NoError(t, err)
	assert.Contains(t, stderr, "invalid configuration, using empty")
	assert.Equal(t, "_No poles or zeros._\n", stdout)
}
