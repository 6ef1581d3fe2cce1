package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHotkey is returned when a key binding cannot be parsed.
var ErrInvalidHotkey = errors.New("invalid hotkey")

// modifierOrder is the order modifiers appear in a normalized hotkey.
//
//nolint:gochecknoglobals // Read-only lookup table.
var modifierOrder = []string{"mod", "alt", "shift"}

// modifierAliases maps accepted modifier spellings to their normalized name.
// Ctrl and Cmd collapse into "mod" so a binding reads the same on every platform.
//
//nolint:gochecknoglobals // Read-only lookup table.
var modifierAliases = map[string]string{
	"mod":     "mod",
	"ctrl":    "mod",
	"control": "mod",
	"cmd":     "mod",
	"command": "mod",
	"meta":    "mod",
	"super":   "mod",
	"alt":     "alt",
	"option":  "alt",
	"opt":     "alt",
	"shift":   "shift",
}

// keyAliases maps spelled-out keys to the character they type.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keyAliases = map[string]string{
	"backtick":  "`",
	"backquote": "`",
	"period":    ".",
	"dot":       ".",
	"comma":     ",",
	"slash":     "/",
	"quote":     "'",
}

// ParseHotkey normalizes a key binding such as "Ctrl+Shift+." into
// "mod+shift+.". Modifiers are deduplicated and ordered mod, alt, shift;
// the key itself is lower-cased.
func ParseHotkey(s string) (string, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidHotkey)
	}

	// "mod++" binds the plus key; split on "+" but keep a trailing literal plus.
	var parts []string
	if strings.HasSuffix(raw, "++") {
		parts = append(strings.Split(strings.TrimSuffix(raw, "++"), "+"), "+")
	} else {
		parts = strings.Split(raw, "+")
	}

	seen := make(map[string]bool, len(modifierOrder))
	key := ""
	for i, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			return "", fmt.Errorf("%w: %q has an empty segment", ErrInvalidHotkey, s)
		}

		last := i == len(parts)-1
		if mod, ok := modifierAliases[token]; ok && !last {
			seen[mod] = true
			continue
		}
		if !last {
			return "", fmt.Errorf("%w: %q is not a modifier", ErrInvalidHotkey, part)
		}
		if alias, ok := keyAliases[token]; ok {
			token = alias
		}
		key = token
	}

	if len(seen) == 0 {
		return "", fmt.Errorf("%w: %q has no modifier", ErrInvalidHotkey, s)
	}

	normalized := make([]string, 0, len(seen)+1)
	for _, mod := range modifierOrder {
		if seen[mod] {
			normalized = append(normalized, mod)
		}
	}
	normalized = append(normalized, key)
	return strings.Join(normalized, "+"), nil
}
