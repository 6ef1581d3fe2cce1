// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 80

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Mark styles
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Code   lipgloss.Style

	// Block styles
	QuoteBar  lipgloss.Style
	Quote     lipgloss.Style
	CodeBlock lipgloss.Style

	// Toolbar styles
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Hotkey   lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Misc
	Title lipgloss.Style
	Dim   lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Bold:   lipgloss.NewStyle().Bold(true),
		Italic: lipgloss.NewStyle().Italic(true),
		Code:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		QuoteBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Quote:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		CodeBlock: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		Active:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Hotkey:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Title: lipgloss.NewStyle().Bold(true),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// newNoColorStyles creates styles with no formatting at all.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Bold:           plain,
		Italic:         plain,
		Code:           plain,
		QuoteBar:       plain,
		Quote:          plain,
		CodeBlock:      plain,
		Active:         plain,
		Inactive:       plain,
		Hotkey:         plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Success:        plain,
		Warning:        plain,
		Error:          plain,
		Title:          plain,
		Dim:            plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the width of the terminal behind writer, or
// defaultTermWidth when the writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
