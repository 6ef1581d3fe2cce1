package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/internal/logging"
	"github.com/yaklabco/richedit/pkg/export"
	"github.com/yaklabco/richedit/pkg/session"
)

// exportFilePermissions is the file mode for exported documents.
const exportFilePermissions = 0o644

type exportFlags struct {
	format string
	output string
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored document in an interchange format",
		Long: `Write the stored document as JSON (the persisted form), YAML, Markdown or
plain text.

Examples:
  richedit export
  richedit export --format markdown
  richedit export -f yaml -o document.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(flags.format)
			if err != nil {
				return err
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return a.withSession(commandContext(cmd), func(_ context.Context, sess *session.Session) error {
				var buf bytes.Buffer
				if err := export.Write(&buf, sess.Document(), format); err != nil {
					return err
				}

				if flags.output == "" {
					if _, err := a.out.Write(buf.Bytes()); err != nil {
						return fmt.Errorf("write output: %w", err)
					}
					return nil
				}

				if err := os.WriteFile(flags.output, buf.Bytes(), exportFilePermissions); err != nil {
					return fmt.Errorf("write %s: %w", flags.output, err)
				}
				a.logger.Info("exported document",
					logging.FieldFormat, format,
					logging.FieldOutput, flags.output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format: json, yaml, markdown, text")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
