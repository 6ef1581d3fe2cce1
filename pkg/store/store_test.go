package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richedit/pkg/config"
	"github.com/yaklabco/richedit/pkg/store"
)

// backends returns a constructor per backend so every test gets a fresh store.
func backends() map[string]func(t *testing.T) store.Store {
	return map[string]func(t *testing.T) store.Store{
		"memory": func(t *testing.T) store.Store {
			t.Helper()
			return store.NewMemory()
		},
		"file": func(t *testing.T) store.Store {
			t.Helper()
			s, err := store.NewFile(filepath.Join(t.TempDir(), "docs"))
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) store.Store {
			t.Helper()
			s, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "richedit.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	t.Parallel()

	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })

			t.Run("missing key", func(t *testing.T) {
				value, ok, err := s.Get(ctx, "absent")
				require.NoError(t, err)
				assert.False(t, ok)
				assert.Empty(t, value)
			})

			t.Run("last write wins", func(t *testing.T) {
				require.NoError(t, s.Set(ctx, "content", `[{"type":"paragraph"}]`))
				require.NoError(t, s.Set(ctx, "content", `[{"type":"quote"}]`))

				value, ok, err := s.Get(ctx, "content")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, `[{"type":"quote"}]`, value)
			})

			t.Run("empty value is stored", func(t *testing.T) {
				require.NoError(t, s.Set(ctx, "blank", ""))

				value, ok, err := s.Get(ctx, "blank")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Empty(t, value)
			})

			t.Run("keys are independent", func(t *testing.T) {
				require.NoError(t, s.Set(ctx, "a.draft", "one"))
				require.NoError(t, s.Set(ctx, "b_draft-2", "two"))

				value, _, err := s.Get(ctx, "a.draft")
				require.NoError(t, err)
				assert.Equal(t, "one", value)
			})

			t.Run("invalid key", func(t *testing.T) {
				for _, key := range []string{"", "..", "../escape", "a/b", "naïve"} {
					require.ErrorIs(t, s.Set(ctx, key, "x"), store.ErrInvalidKey, "key %q", key)
					_, _, err := s.Get(ctx, key)
					require.ErrorIs(t, err, store.ErrInvalidKey, "key %q", key)
				}
			})

			t.Run("cancelled context", func(t *testing.T) {
				cancelled, cancel := context.WithCancel(ctx)
				cancel()

				require.ErrorIs(t, s.Set(cancelled, "content", "x"), context.Canceled)
				_, _, err := s.Get(cancelled, "content")
				require.ErrorIs(t, err, context.Canceled)
			})
		})
	}
}

func TestStoreClosed(t *testing.T) {
	t.Parallel()

	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			s := open(t)
			require.NoError(t, s.Close())

			require.ErrorIs(t, s.Set(ctx, "content", "x"), store.ErrClosed)
			_, _, err := s.Get(ctx, "content")
			require.ErrorIs(t, err, store.ErrClosed)
		})
	}
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	first, err := store.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "content", "saved"))
	require.NoError(t, first.Close())

	raw, err := os.ReadFile(filepath.Join(dir, "content.json"))
	require.NoError(t, err)
	assert.Equal(t, "saved", string(raw))

	second, err := store.NewFile(dir)
	require.NoError(t, err)
	value, ok, err := second.Get(ctx, "content")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "saved", value)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestFile_UnchangedValueIsNotRewritten(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	s, err := store.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "content", "same"))

	path := filepath.Join(dir, "content.json")
	before, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "content", "same"))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after), "file should not be replaced")
}

func TestSQLite_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "richedit.db")

	first, err := store.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "content", "saved"))
	require.NoError(t, first.Close())

	second, err := store.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	value, ok, err := second.Get(ctx, "content")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "saved", value)
	assert.Equal(t, path, second.Path())
}

func TestSQLite_PathWithURICharacters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "drafts?v=1#tip", "rich edit.db")

	s, err := store.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(ctx, "content", "saved"))
	value, ok, err := s.Get(ctx, "content")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "saved", value)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     func(dir string) config.StoreConfig
		want    any
		wantErr error
	}{
		{
			name: "memory",
			cfg:  func(string) config.StoreConfig { return config.StoreConfig{Backend: config.BackendMemory} },
			want: &store.Memory{},
		},
		{
			name: "file",
			cfg: func(dir string) config.StoreConfig {
				return config.StoreConfig{Backend: config.BackendFile, Path: dir}
			},
			want: &store.File{},
		},
		{
			name: "empty backend is file",
			cfg:  func(dir string) config.StoreConfig { return config.StoreConfig{Path: dir} },
			want: &store.File{},
		},
		{
			name: "sqlite",
			cfg: func(dir string) config.StoreConfig {
				return config.StoreConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "r.db")}
			},
			want: &store.SQLite{},
		},
		{
			name:    "unknown",
			cfg:     func(string) config.StoreConfig { return config.StoreConfig{Backend: "redis"} },
			wantErr: store.ErrUnknownBackend,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := store.Open(ctx, tc.cfg(t.TempDir()))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			assert.IsType(t, tc.want, s)
		})
	}
}

func TestValidKey(t *testing.T) {
	t.Parallel()

	assert.True(t, store.ValidKey("content"))
	assert.True(t, store.ValidKey("draft-2.v1_final"))
	assert.False(t, store.ValidKey(""))
	assert.False(t, store.ValidKey("."))
	assert.False(t, store.ValidKey("with space"))
	assert.False(t, store.ValidKey("a\\b"))
}
