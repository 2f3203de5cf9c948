package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/polezero"
	"github.com/aretw0/polezero/internal/config"
	"github.com/aretw0/polezero/internal/metrics"
	"github.com/aretw0/polezero/pkg/adapters/file"
	"github.com/aretw0/polezero/pkg/adapters/memory"
	"github.com/aretw0/polezero/pkg/adapters/redis"
	"github.com/aretw0/polezero/pkg/ports"
)

// EditorBundle is an Editor together with the resources it holds.
type EditorBundle struct {
	Editor *polezero.Editor
	Store  ports.DraftStore
	close  func() error
}

// Close releases the draft store connection, if any.
func (b *EditorBundle) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewEditor builds an Editor from the configuration: the draft store driver,
// the optional redis lock, the publisher, strict values, logger and metrics.
func NewEditor(ctx context.Context, cfg config.Config, logger *slog.Logger, rec *metrics.Recorder) (*EditorBundle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []polezero.Option{
		polezero.WithPublisher(cfg.Publisher()),
		polezero.WithStrictValues(cfg.StrictValues),
		polezero.WithLogger(logger),
		polezero.WithMetrics(rec),
	}
	bundle := &EditorBundle{}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		bundle.Store = memory.NewStore()

	case config.DriverFile:
		bundle.Store = file.NewStore(cfg.Store.Dir)

	case config.DriverRedis:
		rc := cfg.Store.Redis
		store := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix), redis.WithTTL(rc.TTL))
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis draft store unavailable at %s: %w", rc.Addr, err)
		}
		bundle.Store = store
		bundle.close = store.Close
		if rc.Lock {
			opts = append(opts, polezero.WithLocker(redis.NewLocker(store.Client(), rc.Prefix)))
		}
	}

	opts = append(opts, polezero.WithDraftStore(bundle.Store))
	bundle.Editor = polezero.New(opts...)

	logger.Debug("Editor initialized",
		"store", cfg.Store.Driver,
		"publish_path", bundle.Editor.Publisher().Path,
		"strict", cfg.StrictValues,
	)
	return bundle, nil
}
