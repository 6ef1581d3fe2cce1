package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/internal/logging"
	"github.com/yaklabco/richedit/pkg/doctree"
	"github.com/yaklabco/richedit/pkg/parser/goldmark"
	"github.com/yaklabco/richedit/pkg/session"
)

// Import formats.
const (
	importMarkdown   = "markdown"
	importCommonMark = "commonmark"
	importJSON       = "json"
	importYAML       = "yaml"
)

func newImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the stored document with an imported one",
		Long: `Read a document and store it in place of the current one.

Markdown (GitHub Flavored by default, or strict CommonMark), the JSON
persisted form and YAML are accepted. The format follows the file
extension unless --format is given; standard input defaults to Markdown.

Examples:
  richedit import README.md
  richedit import backup.json
  cat notes.md | richedit import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = formatFromPath(args[0])
			}

			input, closeInput, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeInput()

			content, err := io.ReadAll(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return a.withSession(commandContext(cmd), func(ctx context.Context, sess *session.Session) error {
				doc, err := decodeDocument(ctx, format, content)
				if err != nil {
					return fmt.Errorf("import %s: %w", args[0], err)
				}
				if err := sess.Replace(ctx, doc); err != nil {
					return err
				}

				a.logger.Info("imported document",
					logging.FieldInput, args[0],
					logging.FieldFormat, format,
					logging.FieldElements, len(doc.Elements))
				return a.render(sess, nil)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "",
		"Input format: markdown, commonmark, json, yaml (default: from extension)")

	return cmd
}

// formatFromPath picks an import format from the file extension.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return importJSON
	case ".yml", ".yaml":
		return importYAML
	default:
		return importMarkdown
	}
}

func decodeDocument(ctx context.Context, format string, content []byte) (*doctree.Document, error) {
	switch format {
	case importMarkdown, "md", "gfm":
		return goldmark.New(goldmark.FlavorGFM).Parse(ctx, content)
	case importCommonMark:
		return goldmark.New(goldmark.FlavorCommonMark).Parse(ctx, content)
	case importJSON:
		return doctree.Deserialize(string(content))
	case importYAML, "yml":
		return doctree.FromYAML(content)
	default:
		return nil, fmt.Errorf("unknown format %q; valid formats: markdown, commonmark, json, yaml", format)
	}
}
