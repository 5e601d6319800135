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

func newJSONBackend(t *testing.T) *JSONBackend {
	t.Helper()
	return NewJSONBackend(filepath.Join(t.TempDir(), JSONFileName))
}

func TestJSONLoadMissingFile(t *testing.T) {
	b := newJSONBackend(t)

	items, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestJSONInitDoesNotOverwrite(t *testing.T) {
	b := newJSONBackend(t)
	require.NoError(t, b.Init())

	data, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	ctx := context.Background()
	require.NoError(t, b.Save(ctx, []model.Item{{ID: "1", Name: "Drill"}}))
	require.NoError(t, b.Init())

	items, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Drill", items[0].Name)
}

func TestJSONSaveRoundTrip(t *testing.T) {
	b := newJSONBackend(t)
	ctx := context.Background()
	photo := "1700000000000-a1b2c3.jpg"

	want := []model.Item{
		{ID: "1", Name: "Drill", Description: "cordless", PhotoPath: &photo},
		{ID: "2", Name: "Saw"},
	}
	require.NoError(t, b.Save(ctx, want))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(b.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestJSONSavePersistsNullPhoto(t *testing.T) {
	b := newJSONBackend(t)
	require.NoError(t, b.Save(context.Background(), []model.Item{{ID: "1", Name: "Drill"}}))

	data, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"photo_path": null`)
}

func TestJSONLoadCorrupt(t *testing.T) {
	b := newJSONBackend(t)
	require.NoError(t, os.WriteFile(b.Path(), []byte("{not json"), 0o644))

	_, err := b.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}
