package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/inventory/internal/model"
)

func TestEnsureLayout(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "nested", "cache")

	l, err := EnsureLayout(cache)
	require.NoError(t, err)
	assert.DirExists(t, l.CacheDir)
	assert.DirExists(t, l.UploadsDir)
	assert.Equal(t, filepath.Join(l.CacheDir, UploadsDirName), l.UploadsDir)

	// Idempotent.
	_, err = EnsureLayout(cache)
	require.NoError(t, err)
}

func TestOpenBackends(t *testing.T) {
	for _, kind := range []string{BackendJSON, BackendSQLite} {
		t.Run(kind, func(t *testing.T) {
			l, err := EnsureLayout(t.TempDir())
			require.NoError(t, err)
			ctx := context.Background()

			repo, closeFn, err := Open(ctx, kind, l)
			require.NoError(t, err)
			require.NoError(t, repo.Insert(ctx, model.Item{ID: "1", Name: "Drill"}))
			require.NoError(t, closeFn())

			// Reopening sees the persisted item.
			repo, closeFn, err = Open(ctx, kind, l)
			require.NoError(t, err)
			defer closeFn()
			items, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "Drill", items[0].Name)
		})
	}
}

func TestOpenCorruptJSONFailsFast(t *testing.T) {
	l, err := EnsureLayout(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(l.CacheDir, JSONFileName), []byte("[{"), 0o644))

	_, _, err = Open(context.Background(), BackendJSON, l)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestOpenUnknownBackend(t *testing.T) {
	l, err := EnsureLayout(t.TempDir())
	require.NoError(t, err)

	_, _, err = Open(context.Background(), "bolt", l)
	assert.Error(t, err)
}
