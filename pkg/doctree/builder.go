package doctree

import "slices"

// DefaultText is the placeholder text of the default document.
const DefaultText = "A line of text in a paragraph."

// NewDocument creates a document from the given elements.
func NewDocument(elements ...Element) *Document {
	return &Document{Elements: elements}
}

// NewElement creates an element of the given kind.
// An element built without leaves gets a single empty leaf.
func NewElement(kind BlockKind, leaves ...Leaf) Element {
	if len(leaves) == 0 {
		leaves = []Leaf{{}}
	}
	return Element{Kind: kind, Children: leaves}
}

// NewLeaf creates a leaf carrying the given marks.
func NewLeaf(text string, marks ...Mark) Leaf {
	return Leaf{Text: text, Marks: NewMarkSet(marks...)}
}

// Default creates the document a session starts with when nothing usable
// is stored: one paragraph with one unmarked leaf.
// An empty placeholder uses DefaultText.
func Default(placeholder string) *Document {
	if placeholder == "" {
		placeholder = DefaultText
	}
	return NewDocument(NewElement(BlockParagraph, NewLeaf(placeholder)))
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	clone := &Document{Elements: make([]Element, len(d.Elements))}
	for i, el := range d.Elements {
		clone.Elements[i] = Element{
			Kind:     el.Kind,
			Children: slices.Clone(el.Children),
		}
	}
	return clone
}

// Equal reports whether two documents have the same tree.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return slices.EqualFunc(d.Elements, other.Elements, func(a, b Element) bool {
		return a.Kind == b.Kind && slices.Equal(a.Children, b.Children)
	})
}
