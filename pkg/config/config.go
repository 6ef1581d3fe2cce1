// Package config defines core configuration types for richedit.
// These types are pure data structures; discovery, merging and validation
// live in internal/configloader.
package config

// Backend names a document store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// IsValid returns true if the backend is known.
func (b Backend) IsValid() bool {
	switch b {
	case BackendMemory, BackendFile, BackendSQLite:
		return true
	default:
		return false
	}
}

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DefaultKey is the well-known storage key of the document.
const DefaultKey = "content"

// StoreConfig selects and locates the document store.
type StoreConfig struct {
	// Backend is the store implementation: memory, file or sqlite.
	Backend Backend `yaml:"backend" validate:"omitempty,oneof=memory file sqlite"`

	// Path is the directory (file backend) or database file (sqlite backend).
	// Empty resolves under $XDG_DATA_HOME/richedit.
	Path string `yaml:"path,omitempty"`
}

// DocumentConfig controls which document is edited and how it starts.
type DocumentConfig struct {
	// Key is the storage key the document lives under.
	Key string `yaml:"key" validate:"omitempty,max=128,storekey"`

	// Placeholder is the text of the default document.
	Placeholder string `yaml:"placeholder,omitempty" validate:"max=1024"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Config is the root configuration structure for richedit.
type Config struct {
	// Store selects the document store.
	Store StoreConfig `yaml:"store"`

	// Document selects the edited document.
	Document DocumentConfig `yaml:"document"`

	// Log controls logging.
	Log LogConfig `yaml:"log"`

	// Color controls styled output: auto, always or never.
	Color ColorMode `yaml:"color" validate:"omitempty,oneof=auto always never"`

	// Hotkeys rebinds commands, keyed by command name.
	Hotkeys map[string]string `yaml:"hotkeys,omitempty" validate:"omitempty,dive,keys,required,endkeys,required"`

	// CLI-level options (not persisted to config files).

	// Debug forces debug logging.
	Debug bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
		},
		Document: DocumentConfig{
			Key: DefaultKey,
		},
		Log: LogConfig{
			Level: "info",
		},
		Color:   ColorAuto,
		Hotkeys: make(map[string]string),
	}
}
