package mcp

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/aretw0/polezero"
	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"poles":[[0.9,45]],"zeros":[[1,0]]}`

func TestDecode(t *testing.T) {
	s := NewServer(polezero.New())
	ctx := context.Background()

	res, err := s.handleDecode(ctx, mcp.CallToolRequest{}, configArgs{Config: sample})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, sample, res.Encoded)
	require.Len(t, res.Poles, 1)
	assert.Equal(t, 0.9, *res.Poles[0].Magnitude)
	assert.True(t, res.Poles[0].InRange)

	res, err = s.handleDecode(ctx, mcp.CallToolRequest{}, configArgs{Config: `{"poles":[[1]]}`})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, `{"poles":[],"zeros":[]}`, res.Encoded)

	res, err = s.handleDecode(ctx, mcp.CallToolRequest{}, configArgs{})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Poles)
	assert.Empty(t, res.Zeros)
}

func TestEditingTools(t *testing.T) {
	s := NewServer(polezero.New())
	ctx := context.Background()

	res, err := s.handleAddPoint(ctx, mcp.CallToolRequest{}, addArgs{Config: sample, Kind: "pole"})
	require.NoError(t, err)
	assert.Equal(t, `{"poles":[[0.9,45],[0,0]],"zeros":[[1,0]]}`, res.Encoded)

	res, err = s.handleSetCoordinate(ctx, mcp.CallToolRequest{}, setArgs{
		Config: res.Encoded, Kind: "pole", Index: 1, Axis: "phase", Value: "-400",
	})
	require.NoError(t, err)
	assert.Equal(t, -400.0, *res.Poles[1].Phase)
	assert.True(t, res.Valid)
	assert.False(t, res.Poles[1].InRange)

	res, err = s.handleRemovePoint(ctx, mcp.CallToolRequest{}, removeArgs{Config: res.Encoded, Kind: "zero", Index: 0})
	require.NoError(t, err)
	assert.Equal(t, `{"poles":[[0.9,45],[0,-400]],"zeros":[]}`, res.Encoded)

	_, err = s.handleRemovePoint(ctx, mcp.CallToolRequest{}, removeArgs{Config: res.Encoded, Kind: "zero", Index: 0})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = s.handleAddPoint(ctx, mcp.CallToolRequest{}, addArgs{Kind: "residue"})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestSetCoordinate_NonNumeric(t *testing.T) {
	ctx := context.Background()
	args := setArgs{Config: sample, Kind: "zero", Index: 0, Axis: "mag", Value: "abc"}

	res, err := NewServer(polezero.New()).handleSetCoordinate(ctx, mcp.CallToolRequest{}, args)
	require.NoError(t, err)
	assert.Nil(t, res.Zeros[0].Magnitude)
	assert.False(t, res.Valid)
	assert.Equal(t, `{"poles":[[0.9,45]],"zeros":[[null,0]]}`, res.Encoded)

	_, err = NewServer(polezero.New(polezero.WithStrictValues(true))).handleSetCoordinate(ctx, mcp.CallToolRequest{}, args)
	assert.ErrorIs(t, err, domain.ErrNonFinite)
}

func TestEditingTools_RefuseInvalidConfig(t *testing.T) {
	s := NewServer(polezero.New())
	ctx := context.Background()

	res, err := s.handleSetCoordinate(ctx, mcp.CallToolRequest{}, setArgs{
		Config: sample, Kind: "pole", Index: 0, Axis: "mag", Value: "",
	})
	require.NoError(t, err)
	require.False(t, res.Valid)

	_, err = s.handleAddPoint(ctx, mcp.CallToolRequest{}, addArgs{Config: res.Encoded, Kind: "zero"})
	assert.ErrorIs(t, err, codec.ErrNotNumeric)

	_, err = s.handleRemovePoint(ctx, mcp.CallToolRequest{}, removeArgs{Config: "not json", Kind: "pole", Index: 0})
	assert.ErrorIs(t, err, codec.ErrMalformed)

	_, err = s.handlePublish(ctx, mcp.CallToolRequest{}, configArgs{Config: res.Encoded})
	assert.ErrorIs(t, err, codec.ErrNotNumeric)

	_, err = s.handleSetCoordinate(ctx, mcp.CallToolRequest{}, setArgs{
		Config: res.Encoded, Kind: "pole", Index: 0, Axis: "mag", Value: "0.5",
	})
	assert.ErrorIs(t, err, codec.ErrNotNumeric)
	assert.Contains(t, err.Error(), "pass an empty config")
}

func TestEditingTools_ReportOversizeAsInvalid(t *testing.T) {
	t.Setenv(codec.EnvMaxInputSize, "28")
	s := NewServer(polezero.New())
	ctx := context.Background()

	res, err := s.handleAddPoint(ctx, mcp.CallToolRequest{}, addArgs{Kind: "pole"})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = s.handleAddPoint(ctx, mcp.CallToolRequest{}, addArgs{Config: res.Encoded, Kind: "pole"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "exceeds maximum allowed size")

	_, err = s.handlePublish(ctx, mcp.CallToolRequest{}, configArgs{Config: res.Encoded})
	assert.ErrorIs(t, err, codec.ErrInputTooLarge)
}

func TestPublish(t *testing.T) {
	s := NewServer(polezero.New())

	res, err := s.handlePublish(context.Background(), mcp.CallToolRequest{}, configArgs{Config: sample})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	u, err := url.Parse(res.Location)
	require.NoError(t, err)
	assert.Equal(t, "/freq-response", u.Path)
	assert.Equal(t, sample, u.Query().Get("config"))
	assert.True(t, codec.Decode(res.Encoded).Equal(codec.Decode(sample)))
}

func TestDefaultsResource(t *testing.T) {
	s := NewServer(polezero.New())

	contents, err := s.handleDefaults(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, DefaultsURI, text.URI)

	var d Defaults
	require.NoError(t, json.Unmarshal([]byte(text.Text), &d))
	assert.Equal(t, "/freq-response", d.Path)
	assert.Equal(t, "config", d.Param)
	assert.Equal(t, `{"poles":[],"zeros":[]}`, d.Empty)
	assert.Equal(t, 360.0, d.Ranges["phase"].Max)
	assert.Equal(t, 0.01, d.Ranges["magnitude"].Step)
}

func TestInProcessClient(t *testing.T) {
	ctx := context.Background()
	s := NewServer(polezero.New())

	c, err := client.NewInProcessClient(s.MCPServer())
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "polezero-test", Version: "0.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"decode_config", "add_point", "set_coordinate", "remove_point", "publish_config"}, names)

	call := mcp.CallToolRequest{}
	call.Params.Name = "remove_point"
	call.Params.Arguments = map[string]any{"config": sample, "kind": "pole", "index": 5}
	res, err := c.CallTool(ctx, call)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
