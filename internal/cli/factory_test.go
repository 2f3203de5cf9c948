package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/polezero/internal/config"
	"github.com/aretw0/polezero/internal/logging"
	"github.com/aretw0/polezero/pkg/adapters/file"
	"github.com/aretw0/polezero/pkg/adapters/memory"
	"github.com/aretw0/polezero/pkg/adapters/redis"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEditor(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory driver by default", func(t *testing.T) {
		b, err := NewEditor(ctx, config.Default(), logging.NewNop(), nil)
		require.NoError(t, err)
		defer b.Close()

		assert.IsType(t, &memory.Store{}, b.Store)
		assert.Equal(t, "/freq-response", b.Editor.Publisher().Path)
	})

	t.Run("File driver keeps drafts on disk", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = config.DriverFile
		cfg.Store.Dir = filepath.Join(t.TempDir(), "drafts")

		b, err := NewEditor(ctx, cfg, logging.NewNop(), nil)
		require.NoError(t, err)
		defer b.Close()
		require.IsType(t, &file.Store{}, b.Store)

		id, _, err := b.Editor.Open(ctx, memory.NewSource(`{"poles":[[0.5,0]],"zeros":[]}`))
		require.NoError(t, err)

		got, err := file.NewStore(cfg.Store.Dir).Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []domain.ComplexPoint{domain.Point(0.5, 0)}, got.Poles)
	})

	t.Run("Redis driver with lock", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		cfg := config.Default()
		cfg.Store.Driver = config.DriverRedis
		cfg.Store.Redis.Addr = mr.Addr()
		cfg.Store.Redis.Lock = true
		cfg.Store.Redis.TTL = time.Minute

		b, err := NewEditor(ctx, cfg, logging.NewNop(), nil)
		require.NoError(t, err)
		defer b.Close()
		require.IsType(t, &redis.Store{}, b.Store)

		id, _, err := b.Editor.Open(ctx, memory.NewSource(""))
		require.NoError(t, err)
		_, err = b.Editor.AddPoint(ctx, id, domain.Zero)
		require.NoError(t, err)

		assert.True(t, mr.Exists("polezero:draft:"+id))
		assert.False(t, mr.Exists("polezero:draft:lock:"+id), "lock must be released after the edit")
	})

	t.Run("Redis driver unavailable", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		addr := mr.Addr()
		mr.Close()

		cfg := config.Default()
		cfg.Store.Driver = config.DriverRedis
		cfg.Store.Redis.Addr = addr

		_, err = NewEditor(ctx, cfg, logging.NewNop(), nil)
		assert.ErrorContains(t, err, "redis draft store unavailable")
	})

	t.Run("Unknown driver", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = "etcd"
		_, err := NewEditor(ctx, cfg, logging.NewNop(), nil)
		assert.Error(t, err)
	})
}
