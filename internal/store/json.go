package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/erazemk/inventory/internal/model"
)

// JSONFileName is the name of the backing file inside the cache directory.
const JSONFileName = "inventory.json"

// JSONBackend stores the item list as a single JSON array file.
type JSONBackend struct {
	path string
}

// NewJSONBackend returns a backend persisting to path.
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{path: path}
}

// Path returns the backing file path.
func (b *JSONBackend) Path() string {
	return b.path
}

// Init writes an empty array if the backing file does not exist yet.
// An existing file is never touched.
func (b *JSONBackend) Init() error {
	f, err := os.OpenFile(b.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", b.path, err)
	}
	if _, err := f.WriteString("[]"); err != nil {
		f.Close()
		return fmt.Errorf("initializing %s: %w", b.path, err)
	}
	return f.Close()
}

// Load reads the item list. A missing or empty file yields an empty list.
func (b *JSONBackend) Load(_ context.Context) ([]model.Item, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.path, err)
	}
	if len(data) == 0 {
		return []model.Item{}, nil
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, b.path, err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Save writes the list to a temporary file next to the target and renames it
// into place, so readers see either the old or the new list.
func (b *JSONBackend) Save(_ context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("replacing %s: %w", b.path, err)
	}
	return nil
}
