package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/richedit/pkg/doctree"
)

// tableCellSeparator joins the cells of a table row in the row's paragraph.
const tableCellSeparator = " | "

// mapper converts a goldmark AST into document elements.
type mapper struct {
	source   []byte
	elements []doctree.Element
}

// newMapper creates a new mapper for the given content.
func newMapper(source []byte) *mapper {
	return &mapper{source: source}
}

// mapDocument converts a goldmark document node into a document.
func (m *mapper) mapDocument(gmDoc ast.Node) *doctree.Document {
	m.mapBlocks(gmDoc, doctree.BlockParagraph)
	return doctree.NewDocument(m.elements...)
}

// mapBlocks maps the block children of parent. Text blocks become elements
// of the given kind.
func (m *mapper) mapBlocks(parent ast.Node, kind doctree.BlockKind) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapBlock(child, kind)
	}
}

func (m *mapper) mapBlock(node ast.Node, kind doctree.BlockKind) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		m.emit(kind, m.mapInlines(n, 0))

	case *ast.Heading:
		m.emit(kind, m.mapInlines(n, doctree.NewMarkSet(doctree.MarkBold)))

	case *ast.Blockquote:
		m.mapBlocks(n, doctree.BlockQuote)

	case *ast.List, *ast.ListItem:
		m.mapBlocks(n, kind)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		m.emit(doctree.BlockCodeBlock, []doctree.Leaf{{Text: m.blockLines(n)}})

	case *east.Table:
		m.mapTable(n, kind)

	case *ast.ThematicBreak, *ast.HTMLBlock:
		// No document equivalent.

	default:
		m.mapBlocks(node, kind)
	}
}

// mapTable emits one element per row with the cells joined by
// tableCellSeparator. Header cells are bold.
func (m *mapper) mapTable(table *east.Table, kind doctree.BlockKind) {
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var marks doctree.MarkSet
		if _, header := row.(*east.TableHeader); header {
			marks = marks.With(doctree.MarkBold)
		}

		var leaves []doctree.Leaf
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if cell != row.FirstChild() {
				leaves = append(leaves, doctree.Leaf{Text: tableCellSeparator})
			}
			leaves = append(leaves, m.mapInlines(cell, marks)...)
		}
		m.emit(kind, leaves)
	}
}

// emit appends an element. The parser normalizes the whole document once
// mapping is done.
func (m *mapper) emit(kind doctree.BlockKind, leaves []doctree.Leaf) {
	m.elements = append(m.elements, doctree.NewElement(kind, leaves...))
}

// mapInlines flattens the inline children of parent into leaves carrying marks.
func (m *mapper) mapInlines(parent ast.Node, marks doctree.MarkSet) []doctree.Leaf {
	var leaves []doctree.Leaf
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		leaves = append(leaves, m.mapInline(child, marks)...)
	}
	return leaves
}

func (m *mapper) mapInline(node ast.Node, marks doctree.MarkSet) []doctree.Leaf {
	switch n := node.(type) {
	case *ast.Text:
		value := n.Segment.Value(m.source)
		if !n.IsRaw() {
			value = unescape(value)
		}
		text := string(value)
		switch {
		case n.HardLineBreak():
			text += "\n"
		case n.SoftLineBreak():
			text += " "
		}
		return []doctree.Leaf{{Text: text, Marks: marks}}

	case *ast.String:
		return []doctree.Leaf{{Text: string(n.Value), Marks: marks}}

	case *ast.CodeSpan:
		return []doctree.Leaf{{Text: m.codeSpanText(n), Marks: marks.With(doctree.MarkCode)}}

	case *ast.Emphasis:
		mark := doctree.MarkItalic
		if n.Level >= 2 {
			mark = doctree.MarkBold
		}
		return m.mapInlines(n, marks.With(mark))

	case *ast.AutoLink:
		return []doctree.Leaf{{Text: string(n.Label(m.source)), Marks: marks}}

	case *east.TaskCheckBox:
		box := "[ ] "
		if n.IsChecked {
			box = "[x] "
		}
		return []doctree.Leaf{{Text: box, Marks: marks}}

	case *ast.RawHTML:
		return nil

	default:
		// Links, images and strikethrough keep their text only.
		return m.mapInlines(node, marks)
	}
}

// codeSpanText returns the literal content of a code span. Line endings
// inside the span become spaces.
func (m *mapper) codeSpanText(span *ast.CodeSpan) string {
	var sb strings.Builder
	for child := span.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(m.source))
		case *ast.String:
			sb.Write(c.Value)
		}
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}

// blockLines returns the raw lines of a code block without the final newline.
func (m *mapper) blockLines(node ast.Node) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		sb.Write(segment.Value(m.source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// unescape resolves backslash escapes and character references the way
// goldmark's HTML renderer does.
func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
