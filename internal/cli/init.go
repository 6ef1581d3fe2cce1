package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/internal/logging"
	"github.com/yaklabco/richedit/pkg/command"
	"github.com/yaklabco/richedit/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// defaultConfigFile is the project configuration file written by init.
const defaultConfigFile = ".richedit.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	full    bool
	backend string
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new richedit configuration file",
		Long: `Create a new .richedit.yml configuration file in the current directory
with sensible defaults. The file can be customized to choose the storage
backend, the document key and the command hotkeys.

Examples:
  richedit init                      Create minimal .richedit.yml
  richedit init --full               Document every command hotkey
  richedit init --backend sqlite     Store the document in SQLite
  richedit init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all command hotkeys")
	cmd.Flags().StringVar(&flags.backend, "backend", "", "Store backend: memory, file, sqlite (default: file)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .richedit.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigFile
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	config.DefaultCommandInfoProvider = registryCommandInfo(command.DefaultRegistry)

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:    flags.full,
		Backend: config.Backend(flags.backend),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template lists every command with its default hotkey")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'richedit commands' to see all available commands")

	return nil
}

// registryCommandInfo describes the commands of registry for templates.
func registryCommandInfo(registry *command.Registry) config.CommandInfoProvider {
	return func() []config.CommandInfo {
		commands := registry.Commands()
		infos := make([]config.CommandInfo, 0, len(commands))
		for _, c := range commands {
			infos = append(infos, config.CommandInfo{
				Name:        c.Name(),
				Description: c.Description(),
				Hotkey:      c.Hotkey(),
			})
		}
		return infos
	}
}
