package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/pkg/config"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration richedit runs with after merging the system,
user, project and explicit config files, RICHEDIT_* environment variables
and global flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			data, err := a.cfg.ToYAMLWithHeader(configHeader(a.loadedFrom))
			if err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}
			if _, err := a.out.Write(data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
}

// configHeader lists the files a configuration was loaded from.
func configHeader(loadedFrom []string) string {
	header := config.DefaultTemplateHeader() + "\n# Resolved configuration"
	if len(loadedFrom) == 0 {
		return header + " (defaults only)"
	}
	return header + " from:\n#   " + strings.Join(loadedFrom, "\n#   ")
}
