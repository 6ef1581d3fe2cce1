package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/internal/logging"
	"github.com/yaklabco/richedit/pkg/session"
)

func newShowCommand() *cobra.Command {
	sel := &selectionFlags{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored document",
		Long: `Render the stored document followed by the formatting toolbar.

With a selection, the toolbar marks the commands whose format is active
for it.

Examples:
  richedit show
  richedit show --select "line"
  richedit show --anchor 0.0:2 --focus 0.0:6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return a.withSession(commandContext(cmd), func(_ context.Context, sess *session.Session) error {
				selection, err := sel.resolve(sess.Document())
				if err != nil {
					return err
				}
				return a.render(sess, selection)
			})
		},
	}

	sel.register(cmd)
	return cmd
}

func newToggleCommand() *cobra.Command {
	sel := &selectionFlags{}

	cmd := &cobra.Command{
		Use:   "toggle <command>",
		Short: "Toggle a mark or block format over a selection",
		Long: `Apply a formatting command to the stored document and save the result.

The command may be given by name, alias or hotkey. Without a selection the
document is left unchanged.

Examples:
  richedit toggle bold --all
  richedit toggle italic --select "line"
  richedit toggle quote --anchor 0.0:0
  richedit toggle mod+b --anchor 0.0:0 --focus 0.0:4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return a.withSession(commandContext(cmd), func(ctx context.Context, sess *session.Session) error {
				selection, err := sel.resolve(sess.Document())
				if err != nil {
					return err
				}
				if selection == nil {
					a.logger.Info("no selection; document unchanged", logging.FieldCommand, args[0])
				}

				result, err := sess.Dispatch(ctx, args[0], selection)
				if err != nil {
					return fmt.Errorf("toggle: %w", err)
				}
				a.logger.Debug("toggled",
					logging.FieldCommand, args[0],
					logging.FieldChanged, result.Changed)

				return a.render(sess, result.Selection)
			})
		},
	}

	sel.register(cmd)
	return cmd
}

func newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored document with the default document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return a.withSession(commandContext(cmd), func(ctx context.Context, sess *session.Session) error {
				if err := sess.Reset(ctx); err != nil {
					return err
				}
				a.logger.Info("document reset", logging.FieldKey, sess.Key())
				return a.render(sess, nil)
			})
		},
	}
}
