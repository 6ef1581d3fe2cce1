package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	// fileMode is the permission mode for stored values.
	fileMode os.FileMode = 0o600

	// dirMode is the permission mode for the store directory.
	dirMode os.FileMode = 0o700

	// fileExt is appended to every key on disk.
	fileExt = ".json"
)

// File stores each key as <dir>/<key>.json.
// Writes go through a temp file and a rename, so a crash never leaves a
// half-written value behind.
type File struct {
	dir string

	mu     sync.Mutex
	closed bool
}

// NewFile creates a file store rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (f *File) Dir() string {
	return f.dir
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

// Get implements Store.
func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkContext(ctx, "file get"); err != nil {
		return "", false, err
	}
	if err := checkKey(key); err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}

	content, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(content), true, nil
}

// Set implements Store. Writing a value identical to the stored one is a no-op.
func (f *File) Set(ctx context.Context, key, value string) error {
	if err := checkContext(ctx, "file set"); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	if _, err := writeAtomicIfChanged(ctx, f.path(key), []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// writeAtomic replaces path with content via a temp file in the same
// directory: write, sync, chmod, rename. On error the temp file is removed
// and path is left untouched.
func writeAtomic(ctx context.Context, path string, content []byte) error {
	if err := checkContext(ctx, "write atomic"); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, fileMode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// writeAtomicIfChanged calls writeAtomic unless path already holds content.
// It reports whether the file was written.
func writeAtomicIfChanged(ctx context.Context, path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := writeAtomic(ctx, path, content); err != nil {
		return false, err
	}
	return true, nil
}
