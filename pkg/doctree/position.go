package doctree

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Path addresses a leaf: the index of its element and its index in that element.
type Path struct {
	Block int
	Leaf  int
}

// String renders the path as "block.leaf".
func (p Path) String() string {
	return strconv.Itoa(p.Block) + "." + strconv.Itoa(p.Leaf)
}

// Point is a position inside a leaf.
type Point struct {
	Path Path

	// Offset is a character offset into the leaf text, 0 <= Offset <= len.
	Offset int
}

// String renders the point as "block.leaf:offset".
func (p Point) String() string {
	return p.Path.String() + ":" + strconv.Itoa(p.Offset)
}

// ParsePoint parses the "block.leaf:offset" form produced by Point.String.
// A missing ":offset" means offset 0.
func ParsePoint(s string) (Point, error) {
	pathPart, offsetPart, hasOffset := strings.Cut(strings.TrimSpace(s), ":")

	blockPart, leafPart, ok := strings.Cut(pathPart, ".")
	if !ok {
		return Point{}, fmt.Errorf("parse point %q: want block.leaf[:offset]", s)
	}

	block, err := strconv.Atoi(blockPart)
	if err != nil {
		return Point{}, fmt.Errorf("parse point %q: block: %w", s, err)
	}
	leaf, err := strconv.Atoi(leafPart)
	if err != nil {
		return Point{}, fmt.Errorf("parse point %q: leaf: %w", s, err)
	}

	offset := 0
	if hasOffset {
		offset, err = strconv.Atoi(offsetPart)
		if err != nil {
			return Point{}, fmt.Errorf("parse point %q: offset: %w", s, err)
		}
	}

	if block < 0 || leaf < 0 || offset < 0 {
		return Point{}, fmt.Errorf("parse point %q: negative index", s)
	}

	return Point{Path: Path{Block: block, Leaf: leaf}, Offset: offset}, nil
}

// Range is an anchor/focus span over the document.
type Range struct {
	Anchor Point
	Focus  Point
}

// Collapsed returns a range with anchor and focus at p.
func Collapsed(p Point) Range {
	return Range{Anchor: p, Focus: p}
}

// IsCollapsed returns true if anchor and focus are the same point.
func (r Range) IsCollapsed() bool {
	return r.Anchor == r.Focus
}

// IsBackward returns true if the focus comes before the anchor.
func (r Range) IsBackward() bool {
	return ComparePoints(r.Focus, r.Anchor) < 0
}

// Edges returns the range endpoints in document order.
func (r Range) Edges() (Point, Point) {
	if r.IsBackward() {
		return r.Focus, r.Anchor
	}
	return r.Anchor, r.Focus
}

// String renders the range as "anchor..focus".
func (r Range) String() string {
	return r.Anchor.String() + ".." + r.Focus.String()
}

// ComparePoints orders two points by path, then offset.
func ComparePoints(a, b Point) int {
	switch {
	case a.Path.Block != b.Path.Block:
		return compareInts(a.Path.Block, b.Path.Block)
	case a.Path.Leaf != b.Path.Leaf:
		return compareInts(a.Path.Leaf, b.Path.Leaf)
	default:
		return compareInts(a.Offset, b.Offset)
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Resolve returns the leaf a point refers to.
// It panics with *InvariantError when the point does not address the document.
func (d *Document) Resolve(p Point) Leaf {
	if err := d.CheckPoint(p); err != nil {
		panic(err)
	}
	return d.Elements[p.Path.Block].Children[p.Path.Leaf]
}

// CheckPoint returns an *InvariantError if p does not address a leaf of d
// or its offset lies outside the leaf.
func (d *Document) CheckPoint(p Point) error {
	if d == nil || p.Path.Block < 0 || p.Path.Block >= len(d.Elements) {
		return &InvariantError{Path: p.Path, Message: "block index out of range"}
	}
	el := d.Elements[p.Path.Block]
	if len(el.Children) == 0 {
		return &InvariantError{Path: p.Path, Message: "element has no children"}
	}
	if p.Path.Leaf < 0 || p.Path.Leaf >= len(el.Children) {
		return &InvariantError{Path: p.Path, Message: "leaf index out of range"}
	}
	if p.Offset < 0 || p.Offset > el.Children[p.Path.Leaf].Len() {
		return &InvariantError{Path: p.Path, Message: fmt.Sprintf("offset %d out of range", p.Offset)}
	}
	return nil
}

// CheckRange returns an *InvariantError if either endpoint of r is invalid.
func (d *Document) CheckRange(r Range) error {
	if err := d.CheckPoint(r.Anchor); err != nil {
		return err
	}
	return d.CheckPoint(r.Focus)
}

// BlockOffset converts a point into a character offset within its element.
// The point must be valid.
func (d *Document) BlockOffset(p Point) int {
	el := d.Elements[p.Path.Block]
	offset := p.Offset
	for i := range p.Path.Leaf {
		offset += el.Children[i].Len()
	}
	return offset
}

// Affinity picks a leaf when an element offset sits on a leaf boundary.
type Affinity uint8

const (
	// AffinityBackward binds to the leaf ending at the boundary.
	AffinityBackward Affinity = iota

	// AffinityForward binds to the leaf starting at the boundary.
	AffinityForward
)

// PointAt converts an element offset back into a point.
// Offsets past the end of the element clamp to its last position.
func (d *Document) PointAt(block, offset int, affinity Affinity) Point {
	el := d.Elements[block]
	last := len(el.Children) - 1
	start := 0
	for i, leaf := range el.Children {
		end := start + leaf.Len()
		inside := offset < end || (offset == end && affinity == AffinityBackward)
		if inside || i == last {
			local := offset - start
			if local < 0 {
				local = 0
			}
			if local > leaf.Len() {
				local = leaf.Len()
			}
			return Point{Path: Path{Block: block, Leaf: i}, Offset: local}
		}
		start = end
	}
	return Point{Path: Path{Block: block, Leaf: last}}
}

// Start returns the first point of the document.
func (d *Document) Start() Point {
	return Point{}
}

// End returns the last point of the document.
func (d *Document) End() Point {
	block := len(d.Elements) - 1
	leaf := len(d.Elements[block].Children) - 1
	return Point{
		Path:   Path{Block: block, Leaf: leaf},
		Offset: d.Elements[block].Children[leaf].Len(),
	}
}

// SelectAll returns a range covering the whole document.
// It returns false for a document without leaves.
func SelectAll(d *Document) (Range, bool) {
	if d.LeafCount() == 0 {
		return Range{}, false
	}
	return Range{Anchor: d.Start(), Focus: d.End()}, true
}

// FindText selects the first occurrence of needle inside a single element.
func FindText(d *Document, needle string) (Range, bool) {
	if d == nil || needle == "" {
		return Range{}, false
	}
	for block, el := range d.Elements {
		text := el.Text()
		idx := strings.Index(text, needle)
		if idx < 0 {
			continue
		}
		start := utf8.RuneCountInString(text[:idx])
		end := start + utf8.RuneCountInString(needle)
		return Range{
			Anchor: d.PointAt(block, start, AffinityForward),
			Focus:  d.PointAt(block, end, AffinityBackward),
		}, true
	}
	return Range{}, false
}
