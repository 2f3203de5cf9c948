package polezero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/polezero/internal/logging"
	"github.com/aretw0/polezero/internal/metrics"
	"github.com/aretw0/polezero/pkg/adapters/memory"
	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/aretw0/polezero/pkg/mutate"
	"github.com/aretw0/polezero/pkg/ports"
	"github.com/aretw0/polezero/pkg/publish"
	"github.com/aretw0/polezero/pkg/session"
	"github.com/google/uuid"
)

// Editor is the high-level entry point of the library.
// It hydrates configurations from a ConfigSource, keeps drafts while an
// editor is open, and publishes them back.
type Editor struct {
	sessions  *session.Manager
	store     ports.DraftStore
	locker    ports.DistributedLocker
	publisher publish.Publisher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	strict    bool
	newID     func() string
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithDraftStore sets where drafts live while an editor is open (default: in memory).
func WithDraftStore(store ports.DraftStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithLocker enables distributed locking of drafts.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Editor) {
		e.locker = locker
	}
}

// WithPublisher sets the navigation path and query parameter.
func WithPublisher(p publish.Publisher) Option {
	return func(e *Editor) {
		e.publisher = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithMetrics records hydrations, edits and publishes.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Editor) {
		e.metrics = r
	}
}

// WithStrictValues rejects non-finite coordinates at edit time instead of
// storing NaN and letting the next decode fall back to empty.
func WithStrictValues(strict bool) Option {
	return func(e *Editor) {
		e.strict = strict
	}
}

// WithIDGenerator overrides how draft session IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) {
		e.newID = fn
	}
}

// New creates an Editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		publisher: publish.New(),
		logger:    logging.NewNop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.publisher = e.publisher.WithDefaults()
	if e.store == nil {
		e.store = memory.NewStore()
	}

	sessionOpts := []session.Option{session.WithLogger(e.logger)}
	if e.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(e.locker))
	}
	e.sessions = session.NewManager(e.store, sessionOpts...)
	return e
}

// Publisher returns the configured publisher.
func (e *Editor) Publisher() publish.Publisher {
	return e.publisher
}

// Strict reports whether non-finite values are rejected at edit time.
func (e *Editor) Strict() bool {
	return e.strict
}

// Hydrate loads and decodes the configuration held by src. It never fails: an
// unreadable source or invalid value yields the empty configuration and is
// only logged.
func (e *Editor) Hydrate(ctx context.Context, src ports.ConfigSource) domain.Configuration {
	raw, err := src.Load(ctx)
	if err != nil {
		e.logger.Warn("Failed to read configuration source, using empty configuration", "err", err)
		e.metrics.Decode("source_error")
		return domain.Empty()
	}
	if raw == "" {
		e.metrics.Decode("absent")
		return domain.Empty()
	}

	cfg, err := codec.DecodeStrict(raw)
	e.metrics.Decode(codec.Reason(err))
	if err != nil {
		e.logger.Warn("Invalid configuration, using empty configuration", "err", err)
		return domain.Empty()
	}
	e.logger.Debug("Configuration decoded", "poles", len(cfg.Poles), "zeros", len(cfg.Zeros))
	return cfg
}

// Open starts an editor session whose draft is hydrated from src.
func (e *Editor) Open(ctx context.Context, src ports.ConfigSource) (string, domain.Configuration, error) {
	cfg := e.Hydrate(ctx, src)
	id := e.newID()
	if err := e.sessions.Save(ctx, id, cfg); err != nil {
		return "", domain.Configuration{}, fmt.Errorf("failed to open editor: %w", err)
	}
	e.metrics.SessionOpened()
	e.logger.Debug("Editor opened", "session_id", id)
	return id, cfg, nil
}

// Draft returns the configuration being edited in session id.
func (e *Editor) Draft(ctx context.Context, id string) (domain.Configuration, error) {
	return e.sessions.Load(ctx, id)
}

// Sessions lists open editor sessions.
func (e *Editor) Sessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// AddPoint appends (0, 0) to the selected sequence of the draft. Edits that
// would make the encoded draft exceed the decode limit fail with
// codec.ErrInputTooLarge and leave the draft unchanged.
func (e *Editor) AddPoint(ctx context.Context, id string, kind domain.Kind) (domain.Configuration, error) {
	cfg, err := e.sessions.Update(ctx, id, func(c domain.Configuration) (domain.Configuration, error) {
		next, err := mutate.AddPoint(c, kind)
		if err != nil {
			return c, err
		}
		return next, codec.CheckSize(next)
	})
	e.metrics.Edit("add", string(kind), err)
	return cfg, err
}

// SetCoordinate stores interim text input for one coordinate of the draft.
// Non-numeric input becomes NaN unless the editor is strict.
func (e *Editor) SetCoordinate(ctx context.Context, id string, kind domain.Kind, index int, axis domain.Axis, input string) (domain.Configuration, error) {
	return e.SetValue(ctx, id, kind, index, axis, mutate.ParseValue(input))
}

// SetValue replaces one coordinate of the draft.
func (e *Editor) SetValue(ctx context.Context, id string, kind domain.Kind, index int, axis domain.Axis, value float64) (domain.Configuration, error) {
	cfg, err := e.sessions.Update(ctx, id, func(c domain.Configuration) (domain.Configuration, error) {
		if e.strict && !domain.Point(value, 0).Finite() {
			return c, fmt.Errorf("%w: %s %d %s", domain.ErrNonFinite, kind, index, axis)
		}
		next, err := mutate.SetCoordinate(c, kind, index, axis, value)
		if err != nil {
			return c, err
		}
		return next, codec.CheckSize(next)
	})
	e.metrics.Edit("set", string(kind), err)
	return cfg, err
}

// RemovePoint deletes a point from the draft.
func (e *Editor) RemovePoint(ctx context.Context, id string, kind domain.Kind, index int) (domain.Configuration, error) {
	cfg, err := e.sessions.Update(ctx, id, func(c domain.Configuration) (domain.Configuration, error) {
		return mutate.RemovePoint(c, kind, index)
	})
	e.metrics.Edit("remove", string(kind), err)
	return cfg, err
}

// Close discards the draft. The source is left untouched.
func (e *Editor) Close(ctx context.Context, id string) error {
	if err := e.sessions.Delete(ctx, id); err != nil {
		return err
	}
	e.metrics.SessionClosed("close")
	e.logger.Debug("Editor closed without publishing", "session_id", id)
	return nil
}

// Publish encodes the draft, saves it to src, ends the session and returns
// the navigation target. The draft stays locked until src has been written, so
// concurrent edits either land before the publish or fail with
// domain.ErrSessionNotFound. A draft holding non-finite values is still
// published and will hydrate as empty. A draft whose encoded form exceeds the
// decode limit is refused and kept.
func (e *Editor) Publish(ctx context.Context, id string, src ports.ConfigSource) (string, error) {
	var encoded string
	cfg, err := e.sessions.Take(ctx, id, func(ctx context.Context, cfg domain.Configuration) error {
		if err := codec.CheckSize(cfg); err != nil {
			return fmt.Errorf("failed to publish configuration: %w", err)
		}
		verr := codec.Validate(cfg)

		encoded = codec.Encode(cfg)
		if err := src.Save(ctx, encoded); err != nil {
			return fmt.Errorf("failed to publish configuration: %w", err)
		}

		if verr != nil {
			e.logger.Warn("Published configuration will decode as empty", "session_id", id, "err", verr)
		}
		e.metrics.Publish(verr == nil)
		return nil
	})
	if err != nil {
		return "", err
	}

	e.metrics.SessionClosed("publish")
	e.logger.Info("Configuration published", "session_id", id, "poles", len(cfg.Poles), "zeros", len(cfg.Zeros))
	return e.publisher.Target(encoded), nil
}
