package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore is a ByteStore backed by one file per key inside a directory.
// Writes go to a temp file and rename into place, so a crash mid-write never
// leaves a partially written value behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	path := f.path(key)
	tmp, err := os.CreateTemp(f.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("file store: %w", err)
	}
	return value, true, nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}

// path maps a key to a file name, replacing separators that would escape the
// store directory.
func (f *FileStore) path(key string) string {
	name := strings.NewReplacer("/", "_", ":", "_").Replace(key) + ".json"
	return filepath.Join(f.dir, name)
}
