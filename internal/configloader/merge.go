package configloader

import (
	"maps"

	"github.com/yaklabco/richedit/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Hotkeys: merged per command, override's bindings taking precedence
//   - Debug: can only be switched on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Document.Key != "" {
		result.Document.Key = override.Document.Key
	}
	if override.Document.Placeholder != "" {
		result.Document.Placeholder = override.Document.Placeholder
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Debug {
		result.Debug = true
	}

	result.Hotkeys = mergeHotkeys(base.Hotkeys, override.Hotkeys)

	return result
}

func mergeHotkeys(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
