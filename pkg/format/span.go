package format

import "github.com/yaklabco/richedit/pkg/doctree"

// span is the selected part of one element as character offsets [from, to).
type span struct {
	block int
	from  int
	to    int
}

// selectedSpans returns, for every element between start and end, the part
// of it covered by the selection.
func selectedSpans(doc *doctree.Document, start, end doctree.Point) []span {
	spans := make([]span, 0, end.Path.Block-start.Path.Block+1)
	for block := start.Path.Block; block <= end.Path.Block; block++ {
		el := &doc.Elements[block]
		mustHaveChildren(el, block)

		s := span{block: block, from: 0, to: el.Len()}
		if block == start.Path.Block {
			s.from = doc.BlockOffset(start)
		}
		if block == end.Path.Block {
			s.to = doc.BlockOffset(end)
		}
		spans = append(spans, s)
	}
	return spans
}

// caret returns the point a selection acts on as a caret: the focus of a
// collapsed selection, or of an expanded one whose edges sit at the same
// character of one element.
func caret(doc *doctree.Document, sel doctree.Range) (doctree.Point, bool) {
	if sel.IsCollapsed() {
		return sel.Focus, true
	}
	if sel.Anchor.Path.Block != sel.Focus.Path.Block {
		return doctree.Point{}, false
	}
	if doc.BlockOffset(sel.Anchor) != doc.BlockOffset(sel.Focus) {
		return doctree.Point{}, false
	}
	return sel.Focus, true
}

// Intersecting returns the leaves an expanded selection touches: leaves whose
// text overlaps the selected part of their element, plus the leaves of empty
// elements the selection passes through. A selection covering no characters
// of a single element yields the leaf holding its focus.
func Intersecting(doc *doctree.Document, sel doctree.Range) []doctree.LeafEntry {
	mustCheckRange(doc, sel)

	if point, ok := caret(doc, sel); ok {
		leaf := doc.Resolve(point)
		start := doc.BlockOffset(doctree.Point{Path: point.Path})
		return []doctree.LeafEntry{{
			Path:  point.Path,
			Start: start,
			End:   start + leaf.Len(),
			Leaf:  leaf,
		}}
	}

	start, end := sel.Edges()
	spans := selectedSpans(doc, start, end)

	return doctree.FindAll(doc, func(entry doctree.LeafEntry) bool {
		block := entry.Path.Block
		if block < start.Path.Block || block > end.Path.Block {
			return false
		}
		s := spans[block-start.Path.Block]
		if doc.Elements[block].Len() == 0 {
			return true
		}
		return max(entry.Start, s.from) < min(entry.End, s.to)
	})
}
