package doctree

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML encodes the document as YAML with the same shape as the persisted JSON.
func (d *Document) ToYAML() ([]byte, error) {
	if err := Validate(d); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(toWire(d)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML decodes a document written by ToYAML.
// Failures wrap ErrMalformedDocument.
func FromYAML(data []byte) (*Document, error) {
	var wire []elementJSON
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return fromWire(wire)
}
