package ports

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/aretw0/polezero/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDraftStoreContract runs a suite of tests to verify that a DraftStore implementation
// adheres to the defined interface contract.
func RunDraftStoreContract(t *testing.T, store DraftStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		draft := domain.Configuration{
			Poles: []domain.ComplexPoint{domain.Point(0.9, 45), domain.Point(0.9, -45)},
			Zeros: []domain.ComplexPoint{domain.Point(1, 180)},
		}

		err := store.Save(ctx, sessionID, draft)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, draft.Equal(loaded), "loaded %v, want %v", loaded, draft)
	})

	t.Run("Interim NaN Preserved", func(t *testing.T) {
		id := sessionID + "-nan"
		defer func() { _ = store.Delete(ctx, id) }()

		draft := domain.Configuration{Poles: []domain.ComplexPoint{domain.Point(math.NaN(), 10)}}
		require.NoError(t, store.Save(ctx, id, draft))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		require.Len(t, loaded.Poles, 1)
		assert.True(t, math.IsNaN(loaded.Poles[0].Magnitude))
		assert.Equal(t, 10.0, loaded.Poles[0].Phase)
		assert.NotNil(t, loaded.Zeros)
	})

	t.Run("Isolation", func(t *testing.T) {
		id := sessionID + "-iso"
		defer func() { _ = store.Delete(ctx, id) }()

		draft := domain.Configuration{Poles: []domain.ComplexPoint{domain.Point(0.1, 1)}}
		require.NoError(t, store.Save(ctx, id, draft))
		draft.Poles[0].Magnitude = 0.5

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0.1, loaded.Poles[0].Magnitude)

		loaded.Poles[0].Magnitude = 0.7
		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0.1, again.Poles[0].Magnitude)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.Empty())
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.Empty())
		_ = store.Save(ctx, id2, domain.Empty())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunConfigSourceContract verifies that a ConfigSource returns what was saved.
func RunConfigSourceContract(t *testing.T, source ConfigSource) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		raw := `{"poles":[[0.9,45]],"zeros":[]}`
		require.NoError(t, source.Save(ctx, raw))

		loaded, err := source.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, raw, loaded)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, source.Save(ctx, `{"poles":[],"zeros":[[0,0]]}`))
		require.NoError(t, source.Save(ctx, `{"poles":[],"zeros":[]}`))

		loaded, err := source.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"poles":[],"zeros":[]}`, loaded)
	})
}
