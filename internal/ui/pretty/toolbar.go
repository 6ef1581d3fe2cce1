package pretty

import (
	"strings"
)

// ToolbarItem is one button of the formatting toolbar.
type ToolbarItem struct {
	Name   string
	Hotkey string
	Active bool
}

// FormatToolbar renders the toolbar as a single line.
// Example: "[x] bold mod+b  [ ] italic mod+i".
func (s *Styles) FormatToolbar(items []ToolbarItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		var button string
		if item.Active {
			button = s.Active.Render("[x] " + item.Name)
		} else {
			button = s.Inactive.Render("[ ] " + item.Name)
		}
		if item.Hotkey != "" {
			button += " " + s.Hotkey.Render(item.Hotkey)
		}
		parts = append(parts, button)
	}
	return strings.Join(parts, "  ") + "\n"
}

// FormatStatus renders a one-line status message: the document key, where
// the document came from and the current selection.
// Example: "content (stored)  selection 0.0:0..0.0:30".
func (s *Styles) FormatStatus(key, origin, selection string) string {
	line := s.Title.Render(key) + " " + s.Dim.Render("("+origin+")")
	if selection != "" {
		line += "  " + s.Dim.Render("selection") + " " + selection
	}
	return line + "\n"
}
