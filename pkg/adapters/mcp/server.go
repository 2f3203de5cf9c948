package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/polezero"
	"github.com/aretw0/polezero/internal/logging"
	"github.com/aretw0/polezero/pkg/adapters/memory"
	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/aretw0/polezero/pkg/mutate"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultsURI is the resource describing the publish target and value ranges.
const DefaultsURI = "polezero://defaults"

// ConfigResult is returned by every editing tool.
type ConfigResult struct {
	Poles   []PointResult `json:"poles" jsonschema_description:"The poles, in row order"`
	Zeros   []PointResult `json:"zeros" jsonschema_description:"The zeros, in row order"`
	Encoded string        `json:"encoded" jsonschema_description:"The configuration in its wire form, ready to pass to the next tool"`
	Valid   bool          `json:"valid" jsonschema_description:"False when the encoded value would hydrate as an empty configuration"`
	Error   string        `json:"error,omitempty" jsonschema_description:"Why the configuration is not valid"`
}

// PointResult is one point of a ConfigResult. A null coordinate is not a number.
type PointResult struct {
	Magnitude *float64 `json:"magnitude" jsonschema_description:"Distance from the origin, conventionally 0 to 1"`
	Phase     *float64 `json:"phase" jsonschema_description:"Angle in degrees, conventionally -360 to 360"`
	InRange   bool     `json:"in_range" jsonschema_description:"Whether the point lies inside the editor ranges"`
}

// PublishResult carries the navigation target of a publish.
type PublishResult struct {
	Location string `json:"location" jsonschema_description:"Navigation target carrying the configuration"`
	Encoded  string `json:"encoded" jsonschema_description:"The published value"`
	Valid    bool   `json:"valid" jsonschema_description:"False when the page will fall back to an empty configuration"`
}

// Defaults describes the page contract exposed as a resource.
type Defaults struct {
	Path   string               `json:"path"`
	Param  string               `json:"param"`
	Strict bool                 `json:"strict"`
	Empty  string               `json:"empty"`
	Ranges map[string]AxisRange `json:"ranges"`
}

// AxisRange is the editor convention for one coordinate.
type AxisRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

type configArgs struct {
	Config string `json:"config"`
}

type addArgs struct {
	Config string `json:"config"`
	Kind   string `json:"kind"`
}

type setArgs struct {
	Config string `json:"config"`
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
	Axis   string `json:"axis"`
	Value  string `json:"value"`
}

type removeArgs struct {
	Config string `json:"config"`
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
}

// Server exposes configuration editing as MCP tools.
type Server struct {
	editor    *polezero.Editor
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(editor *polezero.Editor, opts ...Option) *Server {
	s := &Server{
		editor: editor,
		logger: logging.NewNop(),
		mcpServer: server.NewMCPServer("polezero-mcp", strings.TrimSpace(polezero.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	configParam := mcp.WithString("config",
		mcp.Description(`Encoded configuration, e.g. {"poles":[[0.9,45]],"zeros":[]}. An empty value means no points. Editing and publishing tools refuse an invalid value; use decode_config to inspect one.`))
	kindParam := mcp.WithString("kind", mcp.Required(),
		mcp.Enum(string(domain.Pole), string(domain.Zero)),
		mcp.Description("Which sequence to edit"))
	indexParam := mcp.WithNumber("index", mcp.Required(), mcp.Min(0),
		mcp.Description("Zero-based position of the point"))

	// TOOL: decode_config
	s.mcpServer.AddTool(mcp.NewTool("decode_config",
		mcp.WithDescription("Decode an encoded pole-zero configuration and report whether it is valid."),
		configParam,
		mcp.WithOutputSchema[ConfigResult](),
	), mcp.NewStructuredToolHandler(s.handleDecode))

	// TOOL: add_point
	s.mcpServer.AddTool(mcp.NewTool("add_point",
		mcp.WithDescription("Append a point at magnitude 0, phase 0 to the poles or zeros."),
		configParam,
		kindParam,
		mcp.WithOutputSchema[ConfigResult](),
	), mcp.NewStructuredToolHandler(s.handleAddPoint))

	// TOOL: set_coordinate
	s.mcpServer.AddTool(mcp.NewTool("set_coordinate",
		mcp.WithDescription("Set the magnitude or phase (degrees) of one point. A non-numeric value is encoded as null: the result is invalid and the other tools refuse it, so continue from the previous encoded value."),
		configParam,
		kindParam,
		indexParam,
		mcp.WithString("axis", mcp.Required(),
			mcp.Enum(string(domain.Magnitude), string(domain.Phase)),
			mcp.Description("Coordinate to set")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New value as text, e.g. \"0.5\" or \"-90\"")),
		mcp.WithOutputSchema[ConfigResult](),
	), mcp.NewStructuredToolHandler(s.handleSetCoordinate))

	// TOOL: remove_point
	s.mcpServer.AddTool(mcp.NewTool("remove_point",
		mcp.WithDescription("Remove one point; later points shift down by one."),
		configParam,
		kindParam,
		indexParam,
		mcp.WithOutputSchema[ConfigResult](),
	), mcp.NewStructuredToolHandler(s.handleRemovePoint))

	// TOOL: publish_config
	s.mcpServer.AddTool(mcp.NewTool("publish_config",
		mcp.WithDescription("Build the navigation target that hands the configuration to the frequency response page."),
		configParam,
		mcp.WithOutputSchema[PublishResult](),
	), mcp.NewStructuredToolHandler(s.handlePublish))
}

// load hydrates the config argument of a tool that edits or publishes it. An
// empty value is the empty configuration; an invalid one is refused rather
// than hydrated as empty.
func (s *Server) load(ctx context.Context, raw string) (domain.Configuration, error) {
	if strings.TrimSpace(raw) != "" {
		if _, err := codec.DecodeStrict(raw); err != nil {
			return domain.Configuration{}, fmt.Errorf("config is not a valid configuration (continue from the last valid value, or pass an empty config to start over): %w", err)
		}
	}
	return s.editor.Hydrate(ctx, memory.NewSource(raw)), nil
}

func (s *Server) result(cfg domain.Configuration) ConfigResult {
	res := ConfigResult{
		Poles:   pointResults(cfg.Poles),
		Zeros:   pointResults(cfg.Zeros),
		Encoded: codec.Encode(cfg),
		Valid:   true,
	}
	if err := codec.Validate(cfg); err != nil {
		res.Valid = false
		res.Error = err.Error()
	}
	return res
}

func pointResults(points []domain.ComplexPoint) []PointResult {
	out := make([]PointResult, 0, len(points))
	for _, p := range points {
		out = append(out, PointResult{
			Magnitude: finiteOrNil(p.Magnitude),
			Phase:     finiteOrNil(p.Phase),
			InRange:   p.InRange(),
		})
	}
	return out
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest, args configArgs) (ConfigResult, error) {
	cfg, err := codec.DecodeStrict(args.Config)
	if err != nil && args.Config != "" {
		s.logger.Warn("MCP decode: invalid configuration", "err", err)
		res := s.result(domain.Empty())
		res.Valid = false
		res.Error = err.Error()
		return res, nil
	}
	return s.result(cfg), nil
}

func (s *Server) handleAddPoint(ctx context.Context, request mcp.CallToolRequest, args addArgs) (ConfigResult, error) {
	kind, err := domain.ParseKind(args.Kind)
	if err != nil {
		return ConfigResult{}, err
	}
	cfg, err := s.load(ctx, args.Config)
	if err != nil {
		return ConfigResult{}, err
	}
	cfg, err = mutate.AddPoint(cfg, kind)
	if err != nil {
		return ConfigResult{}, err
	}
	return s.result(cfg), nil
}

func (s *Server) handleSetCoordinate(ctx context.Context, request mcp.CallToolRequest, args setArgs) (ConfigResult, error) {
	kind, err := domain.ParseKind(args.Kind)
	if err != nil {
		return ConfigResult{}, err
	}
	axis, err := domain.ParseAxis(args.Axis)
	if err != nil {
		return ConfigResult{}, err
	}

	value := mutate.ParseValue(args.Value)
	if s.editor.Strict() && !domain.Point(value, 0).Finite() {
		return ConfigResult{}, fmt.Errorf("%w: %q", domain.ErrNonFinite, args.Value)
	}

	cfg, err := s.load(ctx, args.Config)
	if err != nil {
		return ConfigResult{}, err
	}
	cfg, err = mutate.SetCoordinate(cfg, kind, args.Index, axis, value)
	if err != nil {
		return ConfigResult{}, err
	}
	return s.result(cfg), nil
}

func (s *Server) handleRemovePoint(ctx context.Context, request mcp.CallToolRequest, args removeArgs) (ConfigResult, error) {
	kind, err := domain.ParseKind(args.Kind)
	if err != nil {
		return ConfigResult{}, err
	}
	cfg, err := s.load(ctx, args.Config)
	if err != nil {
		return ConfigResult{}, err
	}
	cfg, err = mutate.RemovePoint(cfg, kind, args.Index)
	if err != nil {
		return ConfigResult{}, err
	}
	return s.result(cfg), nil
}

func (s *Server) handlePublish(ctx context.Context, request mcp.CallToolRequest, args configArgs) (PublishResult, error) {
	cfg, err := s.load(ctx, args.Config)
	if err != nil {
		return PublishResult{}, err
	}
	encoded := codec.Encode(cfg)
	return PublishResult{
		Location: s.editor.Publisher().Target(encoded),
		Encoded:  encoded,
		Valid:    codec.Validate(cfg) == nil,
	}, nil
}

func (s *Server) defaults() Defaults {
	p := s.editor.Publisher()
	return Defaults{
		Path:   p.Path,
		Param:  p.Param,
		Strict: s.editor.Strict(),
		Empty:  codec.Encode(domain.Empty()),
		Ranges: map[string]AxisRange{
			string(domain.Magnitude): {Min: domain.MagnitudeMin, Max: domain.MagnitudeMax, Step: domain.MagnitudeStep},
			string(domain.Phase):     {Min: domain.PhaseMin, Max: domain.PhaseMax, Step: domain.PhaseStep},
		},
	}
}

func (s *Server) registerResources() {
	// EXPOSE: polezero://defaults
	s.mcpServer.AddResource(mcp.NewResource(DefaultsURI, "Publish target and value ranges",
		mcp.WithMIMEType("application/json"),
	), s.handleDefaults)
}

func (s *Server) handleDefaults(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.defaults())
	if err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DefaultsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
