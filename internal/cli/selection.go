package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/pkg/doctree"
)

// ErrInvalidSelection is returned for selections that do not address the
// document.
var ErrInvalidSelection = errors.New("invalid selection")

// selectionFlags selects part of the document for a command.
type selectionFlags struct {
	anchor string
	focus  string
	text   string
	all    bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.anchor, "anchor", "", "selection anchor as block.leaf:offset")
	cmd.Flags().StringVar(&f.focus, "focus", "", "selection focus as block.leaf:offset (default: anchor)")
	cmd.Flags().StringVar(&f.text, "select", "", "select the first occurrence of text")
	cmd.Flags().BoolVar(&f.all, "all", false, "select the whole document")
	cmd.MarkFlagsMutuallyExclusive("anchor", "select", "all")
	cmd.MarkFlagsMutuallyExclusive("focus", "select", "all")
}

// resolve turns the flags into a selection on doc. No flags means no
// selection.
func (f *selectionFlags) resolve(doc *doctree.Document) (*doctree.Range, error) {
	switch {
	case f.all:
		return selectAll(doc), nil
	case f.text != "":
		return selectText(doc, f.text)
	case f.anchor != "" || f.focus != "":
		return selectPoints(doc, f.anchor, f.focus)
	default:
		return nil, nil //nolint:nilnil // No selection is a valid state.
	}
}

func selectAll(doc *doctree.Document) *doctree.Range {
	sel, ok := doctree.SelectAll(doc)
	if !ok {
		return nil
	}
	return &sel
}

func selectText(doc *doctree.Document, text string) (*doctree.Range, error) {
	sel, ok := doctree.FindText(doc, text)
	if !ok {
		return nil, fmt.Errorf("%w: %q not found in a single block", ErrInvalidSelection, text)
	}
	return &sel, nil
}

// selectPoints parses anchor and focus; a missing focus collapses the
// selection onto the anchor.
func selectPoints(doc *doctree.Document, anchor, focus string) (*doctree.Range, error) {
	if anchor == "" {
		return nil, fmt.Errorf("%w: focus given without anchor", ErrInvalidSelection)
	}
	if focus == "" {
		focus = anchor
	}

	anchorPoint, err := doctree.ParsePoint(anchor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	focusPoint, err := doctree.ParsePoint(focus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}

	sel := doctree.Range{Anchor: anchorPoint, Focus: focusPoint}
	if err := doc.CheckRange(sel); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	return &sel, nil
}
