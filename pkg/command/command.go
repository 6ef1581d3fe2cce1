// Package command names the formatting operations a host can trigger and
// binds them to hotkeys.
package command

import (
	"github.com/yaklabco/richedit/pkg/doctree"
	"github.com/yaklabco/richedit/pkg/format"
)

// Kind classifies what a command toggles.
type Kind string

// Command kinds.
const (
	KindMark  Kind = "mark"
	KindBlock Kind = "block"
)

// Command is a named formatting toggle.
type Command interface {
	// Name returns the canonical command name (e.g., "bold").
	Name() string

	// Description returns a one-line human-readable description.
	Description() string

	// Kind reports whether the command toggles a mark or a block kind.
	Kind() Kind

	// Hotkey returns the normalized default key binding, or "" for none.
	Hotkey() string

	// Active reports whether the command's format is on for the selection.
	Active(doc *doctree.Document, sel *doctree.Range) bool

	// Apply toggles the command's format over the selection.
	Apply(doc *doctree.Document, sel *doctree.Range) format.Result
}

// MarkCommand toggles a character mark.
type MarkCommand struct {
	name        string
	description string
	hotkey      string
	mark        doctree.Mark
}

// NewMarkCommand creates a command toggling mark.
// The hotkey is normalized with ParseHotkey; an invalid hotkey is dropped.
func NewMarkCommand(name, description, hotkey string, mark doctree.Mark) *MarkCommand {
	return &MarkCommand{
		name:        name,
		description: description,
		hotkey:      normalizeOrEmpty(hotkey),
		mark:        mark,
	}
}

// Name implements Command.
func (c *MarkCommand) Name() string { return c.name }

// Description implements Command.
func (c *MarkCommand) Description() string { return c.description }

// Kind implements Command.
func (c *MarkCommand) Kind() Kind { return KindMark }

// Hotkey implements Command.
func (c *MarkCommand) Hotkey() string { return c.hotkey }

// Mark returns the toggled mark.
func (c *MarkCommand) Mark() doctree.Mark { return c.mark }

// Active implements Command.
func (c *MarkCommand) Active(doc *doctree.Document, sel *doctree.Range) bool {
	return format.IsMarkActive(doc, sel, c.mark)
}

// Apply implements Command.
func (c *MarkCommand) Apply(doc *doctree.Document, sel *doctree.Range) format.Result {
	return format.ToggleMark(doc, sel, c.mark)
}

// BlockCommand toggles an element kind.
type BlockCommand struct {
	name        string
	description string
	hotkey      string
	kind        doctree.BlockKind
}

// NewBlockCommand creates a command toggling kind.
func NewBlockCommand(name, description, hotkey string, kind doctree.BlockKind) *BlockCommand {
	return &BlockCommand{
		name:        name,
		description: description,
		hotkey:      normalizeOrEmpty(hotkey),
		kind:        kind,
	}
}

// Name implements Command.
func (c *BlockCommand) Name() string { return c.name }

// Description implements Command.
func (c *BlockCommand) Description() string { return c.description }

// Kind implements Command.
func (c *BlockCommand) Kind() Kind { return KindBlock }

// Hotkey implements Command.
func (c *BlockCommand) Hotkey() string { return c.hotkey }

// BlockKind returns the toggled block kind.
func (c *BlockCommand) BlockKind() doctree.BlockKind { return c.kind }

// Active implements Command.
func (c *BlockCommand) Active(doc *doctree.Document, sel *doctree.Range) bool {
	return format.IsBlockActive(doc, sel, c.kind)
}

// Apply implements Command.
func (c *BlockCommand) Apply(doc *doctree.Document, sel *doctree.Range) format.Result {
	return format.ToggleBlock(doc, sel, c.kind)
}

func normalizeOrEmpty(hotkey string) string {
	if hotkey == "" {
		return ""
	}
	normalized, err := ParseHotkey(hotkey)
	if err != nil {
		return ""
	}
	return normalized
}

// boundCommand overrides the hotkey of the command it wraps.
type boundCommand struct {
	Command

	hotkey string
}

func (c boundCommand) Hotkey() string { return c.hotkey }

// rebind returns cmd with its hotkey replaced.
func rebind(cmd Command, hotkey string) Command {
	if bound, ok := cmd.(boundCommand); ok {
		cmd = bound.Command
	}
	if cmd.Hotkey() == hotkey {
		return cmd
	}
	return boundCommand{Command: cmd, hotkey: hotkey}
}
