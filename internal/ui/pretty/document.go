package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/richedit/pkg/doctree"
)

// Block prefixes.
const (
	quoteBar       = "│"
	codeBlockInset = "  "
	minWrapWidth   = 20
)

// DocumentRenderer renders documents for the terminal.
type DocumentRenderer struct {
	styles *Styles
	width  int
}

// NewDocumentRenderer creates a renderer that wraps text at width cells.
// A width below minWrapWidth disables wrapping.
func NewDocumentRenderer(styles *Styles, width int) *DocumentRenderer {
	return &DocumentRenderer{styles: styles, width: width}
}

// Render renders every element of doc on its own line(s).
func (r *DocumentRenderer) Render(doc *doctree.Document) string {
	var builder strings.Builder
	for _, el := range doc.Elements {
		builder.WriteString(r.RenderElement(el))
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderElement renders one element. Quotes get a bar on every line and
// code blocks are inset; neither style depends on color support.
func (r *DocumentRenderer) RenderElement(el doctree.Element) string {
	switch el.Kind {
	case doctree.BlockQuote:
		bar := r.styles.QuoteBar.Render(quoteBar) + " "
		body := r.wrap(r.renderLeaves(el.Children, r.styles.Quote), lipgloss.Width(bar))
		return prefixLines(body, bar)
	case doctree.BlockCodeBlock:
		body := renderLines(r.styles.CodeBlock, strings.TrimSuffix(el.Text(), "\n"))
		return prefixLines(body, codeBlockInset)
	default:
		return r.wrap(r.renderLeaves(el.Children, lipgloss.NewStyle()), 0)
	}
}

func (r *DocumentRenderer) renderLeaves(leaves []doctree.Leaf, base lipgloss.Style) string {
	var builder strings.Builder
	for _, leaf := range leaves {
		builder.WriteString(r.renderLeaf(leaf, base))
	}
	return builder.String()
}

func (r *DocumentRenderer) renderLeaf(leaf doctree.Leaf, base lipgloss.Style) string {
	if leaf.Text == "" {
		return ""
	}
	style := base
	if leaf.Marks.Has(doctree.MarkCode) {
		style = style.Inherit(r.styles.Code)
	}
	if leaf.Marks.Has(doctree.MarkItalic) {
		style = style.Inherit(r.styles.Italic)
	}
	if leaf.Marks.Has(doctree.MarkBold) {
		style = style.Inherit(r.styles.Bold)
	}
	return renderLines(style, leaf.Text)
}

// renderLines styles each line on its own. Lipgloss pads the lines of a
// multi-line string to a common width, which would add trailing spaces.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// wrap word-wraps text to the renderer width minus inset. Lipgloss pads
// wrapped lines to the full width; the padding is trimmed again.
func (r *DocumentRenderer) wrap(text string, inset int) string {
	width := r.width - inset
	if r.width < minWrapWidth || lipgloss.Width(text) <= width {
		return text
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)

	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func prefixLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
