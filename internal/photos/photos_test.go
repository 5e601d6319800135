package photos

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndOpen(t *testing.T) {
	s := NewStore(t.TempDir())

	name, err := s.Put([]byte("jpeg bytes"), "")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-f]{6}\.jpg$`), name)
	assert.True(t, s.Exists(name))

	f, err := s.Open(name)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestPutGeneratesUniqueNames(t *testing.T) {
	s := NewStore(t.TempDir())
	fixed := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for range 20 {
		name, err := s.Put([]byte("x"), "jpg")
		require.NoError(t, err)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := NewStore(t.TempDir())
	name, err := s.Put([]byte("x"), ".jpg")
	require.NoError(t, err)

	require.NoError(t, s.Delete(name))
	assert.False(t, s.Exists(name))
	require.NoError(t, s.Delete(name))

	_, err = s.Open(name)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPathForRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	for _, bad := range []string{"", ".", "..", "../inventory.json", "a/b.jpg"} {
		_, err := s.PathFor(bad)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
		assert.False(t, s.Exists(bad))
	}

	p, err := s.PathFor("1-abcdef.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1-abcdef.jpg"), p)
}

func TestExistsIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	assert.False(t, NewStore(dir).Exists("sub"))
}
