// Package format implements the formatting commands of richedit: checking
// whether a mark or block kind is active for a selection, and toggling it
// by rewriting the smallest region of the document tree.
//
// Every function takes the document for the duration of one call and keeps
// no reference to it afterwards. A nil selection, or a document without
// leaves, makes every operation a no-op. A selection that does not address
// the document is a programmer error and panics with *doctree.InvariantError.
package format

import (
	"fmt"

	"github.com/yaklabco/richedit/pkg/doctree"
)

// Result reports the outcome of a toggle.
type Result struct {
	// Changed is true if the document tree was modified.
	Changed bool

	// Selection is the caller's selection mapped onto the rewritten tree.
	// It covers the same characters as before. Nil when no selection was given.
	Selection *doctree.Range
}

// IsMarkActive reports whether every leaf intersecting the selection carries mark.
// A collapsed selection, or one covering no characters of a single element,
// checks the leaf holding the focus. A selection that intersects no leaf
// reports false.
func IsMarkActive(doc *doctree.Document, sel *doctree.Range, mark doctree.Mark) bool {
	if !usable(doc, sel) {
		return false
	}
	mustCheckMark(mark)

	leaves := Intersecting(doc, *sel)
	if len(leaves) == 0 {
		return false
	}
	for _, entry := range leaves {
		if !entry.Leaf.Marks.Has(mark) {
			return false
		}
	}
	return true
}

// IsBlockActive reports whether the element holding the selection focus has the given kind.
func IsBlockActive(doc *doctree.Document, sel *doctree.Range, kind doctree.BlockKind) bool {
	if !usable(doc, sel) {
		return false
	}
	mustCheckKind(kind)
	mustCheckRange(doc, *sel)

	return doc.Elements[sel.Focus.Path.Block].Kind == kind
}

// ToggleMark sets mark on every leaf intersecting the selection when it is not
// active on all of them, and clears it otherwise. Leaves cut by the selection
// edges are split so text outside the selection keeps its marks. Touched
// elements are normalized afterwards.
func ToggleMark(doc *doctree.Document, sel *doctree.Range, mark doctree.Mark) Result {
	if !usable(doc, sel) {
		return Result{Selection: sel}
	}

	on := !IsMarkActive(doc, sel, mark)

	if point, ok := caret(doc, *sel); ok {
		return toggleCaretLeaf(doc, point, mark, on)
	}

	start, end := sel.Edges()
	anchorOffset := doc.BlockOffset(sel.Anchor)
	focusOffset := doc.BlockOffset(sel.Focus)

	changed := false
	for _, s := range selectedSpans(doc, start, end) {
		if setMarkInSpan(&doc.Elements[s.block], s.from, s.to, mark, on) {
			changed = true
		}
	}

	anchorAffinity, focusAffinity := doctree.AffinityForward, doctree.AffinityBackward
	if sel.IsBackward() {
		anchorAffinity, focusAffinity = focusAffinity, anchorAffinity
	}

	return Result{
		Changed: changed,
		Selection: &doctree.Range{
			Anchor: doc.PointAt(sel.Anchor.Path.Block, anchorOffset, anchorAffinity),
			Focus:  doc.PointAt(sel.Focus.Path.Block, focusOffset, focusAffinity),
		},
	}
}

// ToggleBlock sets the kind of every element intersected by the selection to
// kind, or back to BlockParagraph when kind is already active at the focus.
// Elements are never split.
func ToggleBlock(doc *doctree.Document, sel *doctree.Range, kind doctree.BlockKind) Result {
	if !usable(doc, sel) {
		return Result{Selection: sel}
	}

	target := kind
	if IsBlockActive(doc, sel, kind) {
		target = doctree.BlockParagraph
	}

	start, end := sel.Edges()
	changed := false
	for block := start.Path.Block; block <= end.Path.Block; block++ {
		el := &doc.Elements[block]
		mustHaveChildren(el, block)
		if el.Kind != target {
			el.Kind = target
			changed = true
		}
	}

	selection := *sel
	return Result{Changed: changed, Selection: &selection}
}

// toggleCaretLeaf applies a toggle to the single leaf holding a collapsed selection.
func toggleCaretLeaf(doc *doctree.Document, caret doctree.Point, mark doctree.Mark, on bool) Result {
	offset := doc.BlockOffset(caret)
	el := &doc.Elements[caret.Path.Block]
	leaf := &el.Children[caret.Path.Leaf]

	leaf.Marks = leaf.Marks.Set(mark, on)
	doctree.NormalizeElement(el)

	affinity := doctree.AffinityBackward
	if caret.Offset == 0 {
		affinity = doctree.AffinityForward
	}
	moved := doctree.Collapsed(doc.PointAt(caret.Path.Block, offset, affinity))

	return Result{Changed: true, Selection: &moved}
}

// setMarkInSpan applies mark=on to the characters [from, to) of el, splitting
// leaves at the span edges. It returns true if any leaf changed.
func setMarkInSpan(el *doctree.Element, from, to int, mark doctree.Mark, on bool) bool {
	if el.Len() == 0 {
		return setMarkOnEmpty(el, mark, on)
	}

	out := make([]doctree.Leaf, 0, len(el.Children)+2)
	changed := false
	pos := 0

	for _, leaf := range el.Children {
		leafStart, leafEnd := pos, pos+leaf.Len()
		pos = leafEnd

		lo, hi := max(leafStart, from), min(leafEnd, to)
		if lo >= hi || leaf.Marks.Has(mark) == on {
			out = append(out, leaf)
			continue
		}

		before, rest := leaf.Split(lo - leafStart)
		middle, after := rest.Split(hi - lo)
		middle.Marks = middle.Marks.Set(mark, on)

		if before.Text != "" {
			out = append(out, before)
		}
		out = append(out, middle)
		if after.Text != "" {
			out = append(out, after)
		}
		changed = true
	}

	if !changed {
		return false
	}

	el.Children = out
	doctree.NormalizeElement(el)
	return true
}

func setMarkOnEmpty(el *doctree.Element, mark doctree.Mark, on bool) bool {
	changed := false
	for i := range el.Children {
		if el.Children[i].Marks.Has(mark) != on {
			el.Children[i].Marks = el.Children[i].Marks.Set(mark, on)
			changed = true
		}
	}
	return changed
}

func usable(doc *doctree.Document, sel *doctree.Range) bool {
	return sel != nil && doc.LeafCount() > 0
}

func mustCheckRange(doc *doctree.Document, sel doctree.Range) {
	if err := doc.CheckRange(sel); err != nil {
		panic(err)
	}
}

func mustHaveChildren(el *doctree.Element, block int) {
	if len(el.Children) == 0 {
		panic(&doctree.InvariantError{
			Path:    doctree.Path{Block: block},
			Message: "element has no children",
		})
	}
}

func mustCheckMark(mark doctree.Mark) {
	if !mark.IsValid() {
		panic(&doctree.InvariantError{Message: fmt.Sprintf("unknown mark %d", mark)})
	}
}

func mustCheckKind(kind doctree.BlockKind) {
	if !kind.IsValid() {
		panic(&doctree.InvariantError{Message: fmt.Sprintf("unknown block kind %d", kind)})
	}
}
