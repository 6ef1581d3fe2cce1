package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richedit/pkg/config"
)

// newProjectDir creates a temp directory that stops the upward config search.
func newProjectDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolated(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProjectDir(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.BackendFile, result.Config.Store.Backend)
	assert.Equal(t, config.DefaultKey, result.Config.Document.Key)
	assert.Equal(t, "info", result.Config.Log.Level)
	assert.Equal(t, config.ColorAuto, result.Config.Color)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProjectDir(t)
	writeFile(t, filepath.Join(dir, ".richedit.yml"), `
store:
  backend: sqlite
  path: docs.db
document:
  key: notes
hotkeys:
  bold: ctrl+shift+b
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, result.Config.Store.Backend)
	assert.Equal(t, "docs.db", result.Config.Store.Path)
	assert.Equal(t, "notes", result.Config.Document.Key)
	assert.Equal(t, "info", result.Config.Log.Level, "unset fields keep defaults")
	assert.Equal(t, map[string]string{"bold": "ctrl+shift+b"}, result.Config.Hotkeys)
	assert.Equal(t, []string{filepath.Join(dir, ".richedit.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := newProjectDir(t)
	writeFile(t, filepath.Join(dir, "richedit.yaml"), "color: never\n")
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, config.ColorNever, result.Config.Color)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newProjectDir(t)
	writeFile(t, filepath.Join(dir, ".richedit.yml"), "document:\n  key: project\nlog:\n  level: warn\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "document:\n  key: explicit\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "explicit", result.Config.Document.Key)
	assert.Equal(t, "warn", result.Config.Log.Level)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := newProjectDir(t)
	writeFile(t, filepath.Join(dir, ".richedit.yml"), "store:\n  backend: sqlite\ncolor: always\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Store: config.StoreConfig{Backend: config.BackendMemory},
		Debug: true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, result.Config.Store.Backend)
	assert.Equal(t, config.ColorAlways, result.Config.Color)
	assert.True(t, result.Config.Debug)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{"unknown backend", "store:\n  backend: postgres\n", "store.backend"},
		{"bad key", "document:\n  key: ../escape\n", "document.key"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad color", "color: rainbow\n", "color"},
		{"bad hotkey", "hotkeys:\n  bold: b\n", "hotkeys.bold"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := newProjectDir(t)
			path := filepath.Join(dir, ".richedit.yml")
			writeFile(t, path, tc.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %T: %v", err, err)
			assert.Equal(t, tc.wantField, validationErr.Field)
			assert.Equal(t, path, validationErr.FilePath)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	dir := newProjectDir(t)
	writeFile(t, filepath.Join(dir, ".richedit.yml"), "store: [unclosed\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_UnknownHotkeyCommandWarns(t *testing.T) {
	t.Parallel()

	dir := newProjectDir(t)
	writeFile(t, filepath.Join(dir, ".richedit.yml"), "hotkeys:\n  underline: mod+u\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown command "underline"`)
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(newProjectDir(t)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromLookup(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"RICHEDIT_STORE_BACKEND": "memory",
		"RICHEDIT_DOCUMENT_KEY":  "draft",
		"RICHEDIT_PLACEHOLDER":   "Start typing",
		"RICHEDIT_LOG_LEVEL":     "debug",
		"RICHEDIT_DEBUG":         "1",
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromLookup(cfg, func(key string) string { return env[key] }))

	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "draft", cfg.Document.Key)
	assert.Equal(t, "Start typing", cfg.Document.Placeholder)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Debug)
	assert.Equal(t, config.ColorAuto, cfg.Color, "unset variables leave fields alone")
}

func TestLoadFromLookup_InvalidBool(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromLookup(cfg, func(key string) string {
		if key == "RICHEDIT_DEBUG" {
			return "maybe"
		}
		return ""
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RICHEDIT_DEBUG")
}

func TestLoadFromEnv(t *testing.T) {
	// Not parallel because it modifies the process environment.
	t.Setenv("RICHEDIT_COLOR", "never")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))
	assert.Equal(t, config.ColorNever, cfg.Color)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "RICHEDIT_STORE_BACKEND")
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Hotkeys["bold"] = "mod+b"
	base.Hotkeys["italic"] = "mod+i"

	override := &config.Config{
		Document: config.DocumentConfig{Placeholder: "Hello"},
		Hotkeys:  map[string]string{"italic": "mod+shift+i"},
	}

	merged := MergeAll(base, override)

	assert.Equal(t, config.BackendFile, merged.Store.Backend)
	assert.Equal(t, "Hello", merged.Document.Placeholder)
	assert.Equal(t, map[string]string{"bold": "mod+b", "italic": "mod+shift+i"}, merged.Hotkeys)
	assert.Equal(t, "mod+i", base.Hotkeys["italic"], "base is not modified")
	assert.Nil(t, MergeAll())
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	result := Validate(config.NewConfig())
	assert.True(t, result.Valid(), "%v", result.AllMessages())
	assert.False(t, result.HasWarnings())
	assert.True(t, Validate(nil).Valid())
}
