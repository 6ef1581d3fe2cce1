// Package store persists serialized documents under string keys.
//
// Every backend follows the same contract: Get reports absence with ok=false
// rather than an error, Set replaces any previous value, and the last write
// wins. Values are opaque strings; the store never inspects them.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/richedit/pkg/config"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrInvalidKey is returned when a key contains characters outside [A-Za-z0-9._-].
	ErrInvalidKey = errors.New("invalid store key")

	// ErrClosed is returned when a closed store is used.
	ErrClosed = errors.New("store closed")

	// ErrUnknownBackend is returned by Open for an unrecognized backend.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// dataDirName is the directory created under the XDG data home.
const dataDirName = "richedit"

// Store is a string key-value collaborator.
type Store interface {
	// Get returns the value stored under key, or ok=false if there is none.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the resources held by the store.
	Close() error
}

// ValidKey reports whether key is non-empty and made of [A-Za-z0-9._-] only.
// Keys must also not be "." or "..".
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func checkKey(key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func checkContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// Open creates the store described by cfg.
// An empty backend selects the file backend; an empty path resolves under
// DataDir.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = config.BackendFile
	}

	switch backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		dir := cfg.Path
		if dir == "" {
			dataDir, err := DataDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(dataDir, "documents")
		}
		return NewFile(dir)
	case config.BackendSQLite:
		path := cfg.Path
		if path == "" {
			dataDir, err := DataDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dataDir, "richedit.db")
		}
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// DataDir returns $XDG_DATA_HOME/richedit, falling back to
// ~/.local/share/richedit when XDG_DATA_HOME is unset.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve data directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, dataDirName), nil
}
