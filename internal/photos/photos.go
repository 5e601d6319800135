// Package photos manages photo files stored under the uploads directory.
package photos

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultExt is the extension used when the caller does not suggest one.
const DefaultExt = ".jpg"

var (
	// ErrNotFound is returned when a photo file does not exist.
	ErrNotFound = errors.New("photo not found")
	// ErrInvalidName is returned for filenames that would escape the uploads directory.
	ErrInvalidName = errors.New("invalid photo filename")
)

// Store keeps photo files in a single directory. Writes and deletes are
// serialised with one mutex.
type Store struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewStore returns a store rooted at dir. The directory must exist.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the uploads directory.
func (s *Store) Dir() string {
	return s.dir
}

// Put writes data to a new file with a generated unique name and returns that name.
func (s *Store) Put(data []byte, ext string) (string, error) {
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for range 5 {
		name, err := s.newName(ext)
		if err != nil {
			return "", err
		}
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating photo: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", fmt.Errorf("writing photo: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(f.Name())
			return "", fmt.Errorf("closing photo: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("creating photo: no free filename")
}

// PathFor resolves a stored filename to an absolute path. It does not check existence.
func (s *Store) PathFor(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Exists reports whether the named photo is present on disk.
func (s *Store) Exists(name string) bool {
	p, err := s.PathFor(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Open opens the named photo for reading.
func (s *Store) Open(name string) (*os.File, error) {
	p, err := s.PathFor(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening photo: %w", err)
	}
	return f, nil
}

// Delete removes the named photo. A missing file is not an error.
func (s *Store) Delete(name string) error {
	p, err := s.PathFor(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting photo: %w", err)
	}
	return nil
}

// newName builds "<unix millis>-<6 hex chars><ext>".
func (s *Store) newName(ext string) (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating photo name: %w", err)
	}
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + hex.EncodeToString(buf) + ext, nil
}
