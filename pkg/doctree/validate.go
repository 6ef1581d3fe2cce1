package doctree

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrMalformedDocument is returned when serialized data does not decode into a valid tree.
var ErrMalformedDocument = errors.New("malformed document")

// InvariantError reports a document or selection that breaks the tree invariants.
// The formatting engine panics with it; it is never recovered.
type InvariantError struct {
	// Path is the offending location, when known.
	Path Path

	// Message describes the violation.
	Message string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at %s: %s", e.Path, e.Message)
}

// Validate checks the document invariants and returns the first violation.
// A valid document has at least one element, every element has at least one
// leaf and all leaf text is valid UTF-8.
func Validate(d *Document) error {
	if d == nil {
		return &InvariantError{Message: "nil document"}
	}
	if len(d.Elements) == 0 {
		return &InvariantError{Message: "document has no elements"}
	}
	for block, el := range d.Elements {
		if !el.Kind.IsValid() {
			return &InvariantError{
				Path:    Path{Block: block},
				Message: fmt.Sprintf("unknown block kind %d", el.Kind),
			}
		}
		if len(el.Children) == 0 {
			return &InvariantError{Path: Path{Block: block}, Message: "element has no children"}
		}
		for i, leaf := range el.Children {
			if leaf.Marks>>markCount != 0 {
				return &InvariantError{
					Path:    Path{Block: block, Leaf: i},
					Message: fmt.Sprintf("unknown marks %08b", uint8(leaf.Marks)),
				}
			}
			if !utf8.ValidString(leaf.Text) {
				return &InvariantError{Path: Path{Block: block, Leaf: i}, Message: "text is not valid UTF-8"}
			}
		}
	}
	return nil
}
