package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/polezero/pkg/adapters/file"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/aretw0/polezero/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.DraftStore   = (*file.Store)(nil)
	_ ports.ConfigSource = (*file.Source)(nil)
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDraftStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		err := store.Save(ctx, id, domain.Empty())
		assert.ErrorIs(t, err, file.ErrInvalidSessionID, id)
	}
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "missing"))
	sessions, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", domain.Empty()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-b.json-123"), []byte("x"), 0644))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, sessions)
}

func TestFileSource_Contract(t *testing.T) {
	ports.RunConfigSourceContract(t, file.NewSource(filepath.Join(t.TempDir(), "config.json")))
}

func TestFileSource_MissingFileIsEmpty(t *testing.T) {
	src := file.NewSource(filepath.Join(t.TempDir(), "nope.json"))
	raw, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", raw)
}
