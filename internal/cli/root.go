// Package cli provides the Cobra command structure for richedit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root richedit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "richedit",
		Short: "A rich-text document editor for the terminal",
		Long: `richedit edits a persisted rich-text document from the command line.

The document is a sequence of paragraphs, block quotes and code blocks made
of text runs carrying bold, italic and code marks. Formatting commands
toggle marks and block kinds over a selection, by name, alias or hotkey,
and every change is saved to the configured store: memory, a directory of
files, or a SQLite database.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, flagDebug, false, "enable debug logging")
	flags.String(flagConfig, "", "path to config file")
	flags.StringVar(&color, flagColor, "auto", "colorize output: auto, always, never")
	flags.String(flagBackend, "", "document store: memory, file, sqlite")
	flags.String(flagStorePath, "", "store directory (file) or database file (sqlite)")
	flags.String(flagKey, "", "storage key of the document")

	// Add subcommands.
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newToggleCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newResetCommand())
	rootCmd.AddCommand(newCommandsCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
