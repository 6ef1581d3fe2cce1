package doctree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// elementJSON is the wire form of an Element.
type elementJSON struct {
	Type     string     `json:"type,omitempty" yaml:"type,omitempty"`
	Children []leafJSON `json:"children" yaml:"children"`
}

// leafJSON is the wire form of a Leaf. Marks are present only when on,
// in a fixed order so the encoding is stable.
type leafJSON struct {
	Text   *string `json:"text" yaml:"text"`
	Bold   bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Code   bool    `json:"code,omitempty" yaml:"code,omitempty"`
}

// Serialize encodes the document into its persisted string form.
func Serialize(d *Document) (string, error) {
	if err := Validate(d); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toWire(d)); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Deserialize decodes a persisted string. Any failure wraps ErrMalformedDocument.
func Deserialize(data string) (*Document, error) {
	var wire []elementJSON
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	return fromWire(wire)
}

func toWire(d *Document) []elementJSON {
	wire := make([]elementJSON, len(d.Elements))
	for i, el := range d.Elements {
		children := make([]leafJSON, len(el.Children))
		for j, leaf := range el.Children {
			text := leaf.Text
			children[j] = leafJSON{
				Text:   &text,
				Bold:   leaf.Marks.Has(MarkBold),
				Italic: leaf.Marks.Has(MarkItalic),
				Code:   leaf.Marks.Has(MarkCode),
			}
		}
		wire[i] = elementJSON{Type: el.Kind.String(), Children: children}
	}
	return wire
}

func fromWire(wire []elementJSON) (*Document, error) {
	if len(wire) == 0 {
		return nil, fmt.Errorf("%w: no elements", ErrMalformedDocument)
	}

	doc := &Document{Elements: make([]Element, len(wire))}
	for i, we := range wire {
		kind, err := ParseBlockKind(we.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrMalformedDocument, i, err)
		}
		if len(we.Children) == 0 {
			return nil, fmt.Errorf("%w: element %d has no children", ErrMalformedDocument, i)
		}

		leaves := make([]Leaf, len(we.Children))
		for j, wl := range we.Children {
			if wl.Text == nil {
				return nil, fmt.Errorf("%w: leaf %d.%d has no text", ErrMalformedDocument, i, j)
			}
			var marks MarkSet
			marks = marks.Set(MarkBold, wl.Bold)
			marks = marks.Set(MarkItalic, wl.Italic)
			marks = marks.Set(MarkCode, wl.Code)
			leaves[j] = Leaf{Text: *wl.Text, Marks: marks}
		}

		doc.Elements[i] = Element{Kind: kind, Children: leaves}
	}

	return doc, nil
}
