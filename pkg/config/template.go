package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every command and its default hotkey.
	// If false, generates a minimal template.
	Full bool

	// Backend preselects the store backend written to the template.
	// Empty keeps the default.
	Backend Backend
}

// CommandInfo contains command metadata for template generation.
type CommandInfo struct {
	Name        string
	Description string
	Hotkey      string
}

// CommandInfoProvider is a function that returns command information.
// This allows decoupling from the command package to avoid circular imports.
type CommandInfoProvider func() []CommandInfo

// DefaultCommandInfoProvider is set by the CLI before generating a template.
//
//nolint:gochecknoglobals // Intentional extension point for command info.
var DefaultCommandInfoProvider CommandInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendFile
	}
	if !backend.IsValid() {
		return nil, fmt.Errorf("unknown backend %q", backend)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Where the document is stored.
store:
  # Backend: memory, file or sqlite
  backend: ` + string(backend) + `
  # Directory (file) or database file (sqlite).
  # Defaults to $XDG_DATA_HOME/richedit.
  # path: ""

document:
  # Storage key of the edited document
  key: content
  # Text of the document created when nothing usable is stored
  # placeholder: "A line of text in a paragraph."

log:
  # Minimum log level: debug, info, warn or error
  level: info

# Styled output: auto, always or never
color: auto
`)

	if !opts.Full {
		buf.WriteString(`
# Command key bindings, keyed by command name
# hotkeys:
#   bold: mod+b
`)
		return buf.Bytes(), nil
	}

	commands := getCommandInfos()
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})

	buf.WriteString("\n# Command key bindings, keyed by command name\nhotkeys:\n")
	for _, cmd := range commands {
		buf.WriteString(fmt.Sprintf("  # %s\n", wrapComment(cmd.Description, commentWrapWidth)))
		if cmd.Hotkey == "" {
			buf.WriteString(fmt.Sprintf("  # %s: \"\"\n", cmd.Name))
			continue
		}
		buf.WriteString(fmt.Sprintf("  %s: %q\n", cmd.Name, cmd.Hotkey))
	}

	return buf.Bytes(), nil
}

// getCommandInfos returns information about all registered commands.
func getCommandInfos() []CommandInfo {
	if DefaultCommandInfoProvider != nil {
		return DefaultCommandInfoProvider()
	}

	return []CommandInfo{
		{Name: "bold", Description: "Toggle bold on the selected text", Hotkey: "mod+b"},
		{Name: "italic", Description: "Toggle italic on the selected text", Hotkey: "mod+i"},
		{Name: "code", Description: "Toggle inline code on the selected text", Hotkey: "mod+`"},
		{Name: "quote", Description: "Turn the selected blocks into a block quote", Hotkey: "mod+shift+."},
		{Name: "code-block", Description: "Turn the selected blocks into a code block", Hotkey: "mod+alt+c"},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# richedit configuration
# See: https://github.com/yaklabco/richedit`
}
