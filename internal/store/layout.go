package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erazemk/inventory/internal/db"
)

// UploadsDirName is the photo directory inside the cache directory.
const UploadsDirName = "uploads"

// Backend kinds accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Layout describes the on-disk locations derived from the cache directory.
type Layout struct {
	CacheDir   string
	UploadsDir string
}

// EnsureLayout creates the cache directory and its uploads subdirectory.
func EnsureLayout(cacheDir string) (Layout, error) {
	abs, err := filepath.Abs(cacheDir)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving cache directory: %w", err)
	}
	l := Layout{
		CacheDir:   abs,
		UploadsDir: filepath.Join(abs, UploadsDirName),
	}
	if err := os.MkdirAll(l.UploadsDir, 0o755); err != nil {
		return Layout{}, fmt.Errorf("creating %s: %w", l.UploadsDir, err)
	}
	return l, nil
}

// Open prepares a backend of the given kind inside the cache directory and
// returns a repository over it. The stored list is loaded once, so a corrupt
// store fails here rather than on the first request.
func Open(ctx context.Context, kind string, l Layout) (*Repository, func() error, error) {
	var (
		backend Backend
		closer  = func() error { return nil }
	)

	switch kind {
	case BackendJSON, "":
		jb := NewJSONBackend(filepath.Join(l.CacheDir, JSONFileName))
		if err := jb.Init(); err != nil {
			return nil, nil, err
		}
		backend = jb
	case BackendSQLite:
		database, err := db.Open(filepath.Join(l.CacheDir, SQLiteFileName))
		if err != nil {
			return nil, nil, err
		}
		backend = NewSQLiteBackend(database)
		closer = database.Close
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", kind)
	}

	if _, err := backend.Load(ctx); err != nil {
		closer()
		return nil, nil, fmt.Errorf("loading items: %w", err)
	}

	return NewRepository(backend), closer, nil
}
