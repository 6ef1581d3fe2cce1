package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/yaklabco/richedit/pkg/config"
)

// envVarPrefix is the prefix for all richedit environment variables.
const envVarPrefix = "RICHEDIT_"

// envMapping binds one environment variable to a config field.
type envMapping struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"STORE_BACKEND": {
		description: "Document store: memory, file or sqlite",
		apply: func(cfg *config.Config, value string) error {
			cfg.Store.Backend = config.Backend(value)
			return nil
		},
	},
	"STORE_PATH": {
		description: "Store directory (file) or database path (sqlite)",
		apply: func(cfg *config.Config, value string) error {
			cfg.Store.Path = value
			return nil
		},
	},
	"DOCUMENT_KEY": {
		description: "Storage key of the edited document",
		apply: func(cfg *config.Config, value string) error {
			cfg.Document.Key = value
			return nil
		},
	},
	"PLACEHOLDER": {
		description: "Text of the default document",
		apply: func(cfg *config.Config, value string) error {
			cfg.Document.Placeholder = value
			return nil
		},
	},
	"LOG_LEVEL": {
		description: "Log level: debug, info, warn or error",
		apply: func(cfg *config.Config, value string) error {
			cfg.Log.Level = value
			return nil
		},
	},
	"COLOR": {
		description: "Styled output: auto, always or never",
		apply: func(cfg *config.Config, value string) error {
			cfg.Color = config.ColorMode(value)
			return nil
		},
	},
	"DEBUG": {
		description: "Force debug logging: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("expected true/false/1/0: %w", err)
			}
			cfg.Debug = b
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with RICHEDIT_ (e.g., RICHEDIT_STORE_BACKEND).
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.Getenv)
}

func loadFromLookup(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("invalid value for %s: %q: %w", envVar, value, err)
		}
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
