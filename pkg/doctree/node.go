package doctree

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BlockKind classifies an Element.
type BlockKind uint8

// Block kinds. BlockParagraph is the zero value and the default kind.
const (
	BlockParagraph BlockKind = iota
	BlockQuote
	BlockCodeBlock
)

// blockKinds lists every kind in declaration order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var blockKinds = []BlockKind{BlockParagraph, BlockQuote, BlockCodeBlock}

// String returns the encoded name of the kind.
func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockQuote:
		return "quote"
	case BlockCodeBlock:
		return "code-block"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint8(k))
	}
}

// IsValid returns true if k is one of the declared kinds.
func (k BlockKind) IsValid() bool {
	switch k {
	case BlockParagraph, BlockQuote, BlockCodeBlock:
		return true
	default:
		return false
	}
}

// ParseBlockKind converts an encoded name into a BlockKind.
// The empty string maps to BlockParagraph.
func ParseBlockKind(name string) (BlockKind, error) {
	switch strings.ToLower(name) {
	case "", "paragraph":
		return BlockParagraph, nil
	case "quote", "block-quote", "blockquote":
		return BlockQuote, nil
	case "code-block", "code_block", "codeblock":
		return BlockCodeBlock, nil
	default:
		return 0, fmt.Errorf("unknown block kind %q", name)
	}
}

// BlockKinds returns all block kinds in declaration order.
func BlockKinds() []BlockKind {
	return append([]BlockKind(nil), blockKinds...)
}

// Mark is a character-level formatting flag.
type Mark uint8

// Marks supported on a Leaf.
const (
	MarkBold Mark = iota
	MarkItalic
	MarkCode

	markCount
)

// String returns the encoded name of the mark.
func (m Mark) String() string {
	switch m {
	case MarkBold:
		return "bold"
	case MarkItalic:
		return "italic"
	case MarkCode:
		return "code"
	default:
		return fmt.Sprintf("Mark(%d)", uint8(m))
	}
}

// IsValid returns true if m is one of the declared marks.
func (m Mark) IsValid() bool {
	return m < markCount
}

// ParseMark converts an encoded name into a Mark.
func ParseMark(name string) (Mark, error) {
	switch strings.ToLower(name) {
	case "bold", "strong":
		return MarkBold, nil
	case "italic", "emphasis", "em":
		return MarkItalic, nil
	case "code":
		return MarkCode, nil
	default:
		return 0, fmt.Errorf("unknown mark %q", name)
	}
}

// Marks returns all marks in encoding order.
func Marks() []Mark {
	return []Mark{MarkBold, MarkItalic, MarkCode}
}

// MarkSet is the set of marks carried by a Leaf.
// A mark that is absent from the set is off; there is no explicit false.
type MarkSet uint8

// NewMarkSet builds a set holding the given marks.
func NewMarkSet(marks ...Mark) MarkSet {
	var set MarkSet
	for _, m := range marks {
		set = set.With(m)
	}
	return set
}

// Has reports whether m is in the set.
func (s MarkSet) Has(m Mark) bool {
	return s&(1<<m) != 0
}

// With returns a copy of the set with m added.
func (s MarkSet) With(m Mark) MarkSet {
	return s | 1<<m
}

// Without returns a copy of the set with m removed.
func (s MarkSet) Without(m Mark) MarkSet {
	return s &^ (1 << m)
}

// Set returns a copy of the set with m added when on is true and removed otherwise.
func (s MarkSet) Set(m Mark, on bool) MarkSet {
	if on {
		return s.With(m)
	}
	return s.Without(m)
}

// IsEmpty returns true if no mark is set.
func (s MarkSet) IsEmpty() bool {
	return s == 0
}

// List returns the marks in the set in encoding order.
func (s MarkSet) List() []Mark {
	var marks []Mark
	for _, m := range Marks() {
		if s.Has(m) {
			marks = append(marks, m)
		}
	}
	return marks
}

// String renders the set as "bold+italic", or "none".
func (s MarkSet) String() string {
	marks := s.List()
	if len(marks) == 0 {
		return "none"
	}
	names := make([]string, len(marks))
	for i, m := range marks {
		names[i] = m.String()
	}
	return strings.Join(names, "+")
}

// Leaf is a terminal text-bearing node.
type Leaf struct {
	// Text is the literal content of the leaf.
	Text string

	// Marks holds the formatting flags that are on.
	Marks MarkSet
}

// Len returns the length of the leaf text in characters.
func (l Leaf) Len() int {
	return utf8.RuneCountInString(l.Text)
}

// Split cuts the leaf at a character offset. Both halves keep the leaf marks.
func (l Leaf) Split(offset int) (Leaf, Leaf) {
	idx := byteIndex(l.Text, offset)
	return Leaf{Text: l.Text[:idx], Marks: l.Marks}, Leaf{Text: l.Text[idx:], Marks: l.Marks}
}

// Element is a block-level node holding an ordered run of leaves.
type Element struct {
	// Kind is the block kind of the element.
	Kind BlockKind

	// Children are the leaves of the element. Never empty in a valid document.
	Children []Leaf
}

// Text returns the concatenated text of all leaves.
func (e Element) Text() string {
	var sb strings.Builder
	for _, leaf := range e.Children {
		sb.WriteString(leaf.Text)
	}
	return sb.String()
}

// Len returns the element length in characters.
func (e Element) Len() int {
	total := 0
	for _, leaf := range e.Children {
		total += leaf.Len()
	}
	return total
}

// Document is the ordered sequence of top-level elements.
type Document struct {
	Elements []Element
}

// LeafCount returns the number of leaves across all elements.
func (d *Document) LeafCount() int {
	if d == nil {
		return 0
	}
	count := 0
	for _, el := range d.Elements {
		count += len(el.Children)
	}
	return count
}

// Text returns the document text with elements joined by newlines.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	parts := make([]string, len(d.Elements))
	for i, el := range d.Elements {
		parts[i] = el.Text()
	}
	return strings.Join(parts, "\n")
}

// byteIndex converts a character offset into a byte index of s.
// Offsets past the end clamp to len(s).
func byteIndex(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == offset {
			return i
		}
		count++
	}
	return len(s)
}
