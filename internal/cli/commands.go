package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/internal/ui/pretty"
	"github.com/yaklabco/richedit/pkg/command"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// commandInfo represents a command in JSON output.
type commandInfo struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Hotkey      string   `json:"hotkey,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
}

func newCommandsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List formatting commands and their hotkeys",
		Long: `List the formatting commands with their kind, hotkey and aliases.
Hotkeys reflect the bindings from the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			infos := listCommands(a.registry)
			if format == formatJSON {
				return outputCommandsJSON(a.out, infos)
			}

			rows := make([]pretty.CommandRow, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, pretty.CommandRow(info))
			}
			table := pretty.NewCommandTable(a.styles, a.width)
			if _, err := io.WriteString(a.out, table.Format(rows)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json")

	return cmd
}

func listCommands(registry *command.Registry) []commandInfo {
	commands := registry.Commands()
	infos := make([]commandInfo, 0, len(commands))
	for _, c := range commands {
		infos = append(infos, commandInfo{
			Name:        c.Name(),
			Kind:        string(c.Kind()),
			Hotkey:      c.Hotkey(),
			Aliases:     registry.Aliases(c.Name()),
			Description: c.Description(),
		})
	}
	return infos
}

// outputCommandsJSON writes commands as a JSON array.
func outputCommandsJSON(w io.Writer, infos []commandInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding commands: %w", err)
	}
	return nil
}
