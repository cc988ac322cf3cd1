package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return fs
}

func TestFileStore_SetGetDelete(t *testing.T) {
	fs := newFileStore(t)
	ctx := context.Background()

	if _, found, err := fs.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	if err := fs.Set(ctx, "k1", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, found, err := fs.Get(ctx, "k1")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if string(value) != `{"a":1}` {
		t.Fatalf("unexpected value: %s", value)
	}

	// Overwrite replaces the whole value.
	if err := fs.Set(ctx, "k1", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = fs.Get(ctx, "k1")
	if string(value) != `{"a":2}` {
		t.Fatalf("overwrite not applied: %s", value)
	}

	if err := fs.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := fs.Get(ctx, "k1"); found {
		t.Fatalf("deleted key still present")
	}
	if err := fs.Delete(ctx, "k1"); err != nil {
		t.Fatalf("double delete should be a no-op: %v", err)
	}
}

func TestFileStore_KeySeparatorsSanitized(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := fs.Set(context.Background(), "fieldservice:snapshot", []byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected single file, got %d", len(entries))
	}
	if strings.ContainsAny(entries[0].Name(), ":/") {
		t.Fatalf("separator leaked into file name: %s", entries[0].Name())
	}
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	fs, _ := NewFileStore(dir)

	for i := 0; i < 3; i++ {
		if err := fs.Set(context.Background(), "k", []byte("value")); err != nil {
			t.Fatalf("set: %v", err)
		}
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}
