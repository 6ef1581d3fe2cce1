// Package export writes documents in interchange formats: the persisted
// JSON form, YAML, Markdown and plain text.
package export

import (
	"fmt"
	"io"

	"github.com/yaklabco/richedit/pkg/doctree"
)

// Write encodes doc in the given format to w.
func Write(w io.Writer, doc *doctree.Document, format Format) error {
	if err := doctree.Validate(doc); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	switch format {
	case FormatJSON:
		encoded, err := doctree.Serialize(doc)
		if err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		return writeString(w, encoded+"\n")
	case FormatYAML:
		data, err := doc.ToYAML()
		if err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
		return nil
	case FormatMarkdown:
		return writeMarkdown(w, doc)
	case FormatText:
		return writeString(w, doc.Text()+"\n")
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
