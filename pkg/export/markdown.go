package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	md "github.com/nao1215/markdown"

	"github.com/yaklabco/richedit/pkg/doctree"
)

// markdownEscaper escapes characters that would otherwise start inline markup.
//
//nolint:gochecknoglobals // Read-only replacer.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
)

// writeMarkdown renders doc as CommonMark. Elements are separated by a
// blank line; code blocks are fenced and tagged with a detected language.
func writeMarkdown(w io.Writer, doc *doctree.Document) error {
	builder := md.NewMarkdown(w)

	for i, el := range doc.Elements {
		if i > 0 {
			builder.PlainText("")
		}

		switch el.Kind {
		case doctree.BlockParagraph:
			builder.PlainText(renderInline(el.Children))
		case doctree.BlockQuote:
			builder.Blockquote(renderInline(el.Children))
		case doctree.BlockCodeBlock:
			code := el.Text()
			builder.CodeBlocks(md.SyntaxHighlight(DetectLanguage(code)), strings.TrimSuffix(code, "\n"))
		default:
			return fmt.Errorf("export markdown: unknown block kind %s", el.Kind)
		}
	}

	if err := builder.Build(); err != nil {
		return fmt.Errorf("export markdown: %w", err)
	}
	return writeString(w, "\n")
}

// renderInline renders the leaves of one element with their marks.
func renderInline(leaves []doctree.Leaf) string {
	var sb strings.Builder
	for _, leaf := range leaves {
		sb.WriteString(renderLeaf(leaf))
	}
	return sb.String()
}

// renderLeaf wraps the leaf text in mark delimiters. Surrounding whitespace
// stays outside the delimiters so the emphasis still parses.
func renderLeaf(leaf doctree.Leaf) string {
	core := strings.TrimFunc(leaf.Text, unicode.IsSpace)
	if core == "" || leaf.Marks.IsEmpty() {
		return markdownEscaper.Replace(leaf.Text)
	}

	lead := leaf.Text[:strings.Index(leaf.Text, core)]
	trail := leaf.Text[len(lead)+len(core):]

	if leaf.Marks.Has(doctree.MarkCode) {
		core = codeSpan(core)
	} else {
		core = markdownEscaper.Replace(core)
	}
	if leaf.Marks.Has(doctree.MarkItalic) {
		core = md.Italic(core)
	}
	if leaf.Marks.Has(doctree.MarkBold) {
		core = md.Bold(core)
	}
	return lead + core + trail
}

// codeSpan renders text as inline code, widening the fence when the text
// itself contains backticks.
func codeSpan(text string) string {
	if !strings.Contains(text, "`") {
		return md.Code(text)
	}
	fence := "`"
	for strings.Contains(text, fence) {
		fence += "`"
	}
	return fence + " " + text + " " + fence
}
