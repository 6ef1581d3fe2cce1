package command

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownCommand is returned when a name resolves to no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// Registry holds the registered commands.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Command
	byHotkey map[string]Command
	aliases  map[string]string // alias -> canonical name
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]Command),
		byHotkey: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry.
// A command with the same name, or the same hotkey, is replaced.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byName[cmd.Name()]; ok && old.Hotkey() != "" {
		delete(r.byHotkey, old.Hotkey())
	}
	r.byName[cmd.Name()] = cmd
	if cmd.Hotkey() != "" {
		r.byHotkey[cmd.Hotkey()] = cmd
	}
}

// RegisterAlias maps an alias to a canonical command name
// (e.g., "toggle-mark:bold" -> "bold").
func (r *Registry) RegisterAlias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = name
}

// Get retrieves a command by its canonical name only.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byName[name]
	return cmd, ok
}

// GetByHotkey retrieves a command by key binding.
// The binding is normalized before lookup.
func (r *Registry) GetByHotkey(hotkey string) (Command, bool) {
	normalized, err := ParseHotkey(hotkey)
	if err != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byHotkey[normalized]
	return cmd, ok
}

// Resolve finds a command by name, alias, or hotkey, in that order.
// It returns an error wrapping ErrUnknownCommand when nothing matches.
func (r *Registry) Resolve(key string) (Command, error) {
	r.mu.RLock()
	if cmd, ok := r.byName[key]; ok {
		r.mu.RUnlock()
		return cmd, nil
	}
	if target, ok := r.aliases[key]; ok {
		if cmd, ok := r.byName[target]; ok {
			r.mu.RUnlock()
			return cmd, nil
		}
	}
	r.mu.RUnlock()

	if cmd, ok := r.GetByHotkey(key); ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, key)
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.byName))
	for _, cmd := range r.byName {
		result = append(result, cmd)
	}

	slices.SortFunc(result, func(a, b Command) int {
		return cmp.Compare(a.Name(), b.Name())
	})

	return result
}

// Names returns all registered command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for name := range r.byName {
		result = append(result, name)
	}

	slices.Sort(result)
	return result
}

// Aliases returns the aliases pointing at name, sorted.
func (r *Registry) Aliases(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for alias, target := range r.aliases {
		if target == name {
			result = append(result, alias)
		}
	}

	slices.Sort(result)
	return result
}

// Bind rebinds the command named by name (or one of its aliases) to hotkey.
// A command that held the hotkey before loses it.
func (r *Registry) Bind(name, hotkey string) error {
	normalized, err := ParseHotkey(hotkey)
	if err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if target, ok := r.aliases[name]; ok {
		name = target
	}
	cmd, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("bind %q: %w", name, ErrUnknownCommand)
	}

	if holder, ok := r.byHotkey[normalized]; ok && holder.Name() != name {
		r.byName[holder.Name()] = rebind(holder, "")
	}
	if cmd.Hotkey() != "" {
		delete(r.byHotkey, cmd.Hotkey())
	}

	bound := rebind(cmd, normalized)
	r.byName[name] = bound
	r.byHotkey[normalized] = bound
	return nil
}

// Clone returns an independent copy of the registry. Bindings applied to
// the copy leave the original untouched.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{
		byName:   maps.Clone(r.byName),
		byHotkey: maps.Clone(r.byHotkey),
		aliases:  maps.Clone(r.aliases),
	}
}

// DefaultRegistry is the global registry holding the built-in commands.
//
//nolint:gochecknoglobals // Global registry is intentional for command registration
var DefaultRegistry = NewRegistry()
