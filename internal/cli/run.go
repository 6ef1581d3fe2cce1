package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/internal/logging"
	"github.com/yaklabco/richedit/pkg/session"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Apply an editing script to the stored document",
		Long: `Apply a script of selection and formatting lines to the stored document.
The script is read from the given file, or from standard input when the
file is omitted or "-".

Script lines:
  select all | none
  select text <text>
  select <anchor> [<focus>]     points as block.leaf:offset
  toggle <command>              command name or alias
  hotkey <binding>              e.g. mod+b

Example:
  printf 'select text line\ntoggle italic\nhotkey mod+shift+.\n' | richedit run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, closeInput, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeInput()

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return a.withSession(commandContext(cmd), func(ctx context.Context, sess *session.Session) error {
				runner := newScriptRunner(sess, a.logger)
				if err := runner.Run(ctx, input); err != nil {
					return fmt.Errorf("run script: %w", err)
				}
				a.logger.Debug("script finished", logging.FieldChanged, runner.Changes())
				return a.render(sess, runner.Selection())
			})
		},
	}
	return cmd
}

// openInput opens the file named by the first argument, or standard input
// for no argument or "-".
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	file, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", args[0], err)
	}
	return file, func() { _ = file.Close() }, nil
}
