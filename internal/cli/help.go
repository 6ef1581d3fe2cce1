package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/richedit/internal/ui/pretty"
	"github.com/yaklabco/richedit/pkg/command"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	FlagType    lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Hotkey      lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			FlagType:    plain,
			Description: plain,
			Example:     plain,
			Hotkey:      plain,
		}
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		FlagType:    dim,
		Description: lipgloss.NewStyle(),
		Example:     dim,
		Hotkey:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
}

// HelpFormatter renders styled help for Cobra commands. The root command
// help also lists the default hotkeys of the registered commands.
type HelpFormatter struct {
	styles   *HelpStyles
	registry *command.Registry
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles:   NewHelpStyles(pretty.IsColorEnabled(colorMode, writer)),
		registry: command.DefaultRegistry,
	}
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ cmdName .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ cmdName .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if .IsAvailableCommand}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}
{{- if not .HasParent}}{{with hotkeys}}

{{ heading "Editor Hotkeys:" }}
{{ . }}{{end}}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{ cmdName (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"cmdName":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"example":    h.styles.Example.Render,
		"flags":      h.flagUsages,
		"hotkeys":    h.editorHotkeys,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespaces,
	}
}

// ApplyToCommand installs the styled help and usage output on cmd and,
// through inheritance, on its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	render := func(c *cobra.Command) error {
		if err := tmpl.Execute(c.OutOrStdout(), c); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagUsages lists the visible flags of fs, one per line, with the flag
// names aligned in a column.
func (h *HelpFormatter) flagUsages(fs *pflag.FlagSet) string {
	type row struct {
		names, typ, usage string
	}

	var rows []row
	width := 0
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}
		typ, usage := pflag.UnquoteUsage(f)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
			usage += fmt.Sprintf(" (default %q)", f.DefValue)
		}

		width = max(width, len(names)+len(typ)+1)
		rows = append(rows, row{names: names, typ: typ, usage: usage})
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		plainWidth := len(r.names)
		left := h.styles.Flag.Render(r.names)
		if r.typ != "" {
			left += " " + h.styles.FlagType.Render(r.typ)
			plainWidth += 1 + len(r.typ)
		}
		padding := strings.Repeat(" ", width-plainWidth+3)
		lines = append(lines, "  "+left+padding+h.styles.Description.Render(r.usage))
	}
	return strings.Join(lines, "\n")
}

// editorHotkeys lists "name  hotkey" for every command that has a binding.
func (h *HelpFormatter) editorHotkeys() string {
	commands := h.registry.Commands()

	width := 0
	for _, c := range commands {
		width = max(width, len(c.Name()))
	}

	var lines []string
	for _, c := range commands {
		if c.Hotkey() == "" {
			continue
		}
		lines = append(lines, "  "+h.styles.Subcommand.Render(rpad(c.Name(), width))+
			"  "+h.styles.Hotkey.Render(c.Hotkey()))
	}
	return strings.Join(lines, "\n")
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
