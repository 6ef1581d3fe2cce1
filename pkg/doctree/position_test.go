package doctree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richedit/pkg/doctree"
)

func pt(block, leaf, offset int) doctree.Point {
	return doctree.Point{Path: doctree.Path{Block: block, Leaf: leaf}, Offset: offset}
}

func TestParsePoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    doctree.Point
		wantErr bool
	}{
		{input: "0.0:0", want: pt(0, 0, 0)},
		{input: "2.1:14", want: pt(2, 1, 14)},
		{input: " 1.3 ", want: pt(1, 3, 0)},
		{input: "1", wantErr: true},
		{input: "a.0:1", wantErr: true},
		{input: "0.b", wantErr: true},
		{input: "0.0:x", wantErr: true},
		{input: "0.-1:2", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := doctree.ParsePoint(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			round, err := doctree.ParsePoint(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, round)
		})
	}
}

func TestRange_Edges(t *testing.T) {
	t.Parallel()

	forward := doctree.Range{Anchor: pt(0, 0, 1), Focus: pt(1, 0, 0)}
	start, end := forward.Edges()
	assert.False(t, forward.IsBackward())
	assert.Equal(t, pt(0, 0, 1), start)
	assert.Equal(t, pt(1, 0, 0), end)

	backward := doctree.Range{Anchor: pt(1, 0, 0), Focus: pt(0, 2, 5)}
	start, end = backward.Edges()
	assert.True(t, backward.IsBackward())
	assert.Equal(t, pt(0, 2, 5), start)
	assert.Equal(t, pt(1, 0, 0), end)

	caret := doctree.Collapsed(pt(0, 0, 3))
	assert.True(t, caret.IsCollapsed())
	assert.False(t, caret.IsBackward())
	assert.Equal(t, "0.0:3..0.0:3", caret.String())
}

func TestDocument_PointAt(t *testing.T) {
	t.Parallel()

	doc := doctree.NewDocument(doctree.NewElement(doctree.BlockParagraph,
		doctree.NewLeaf("abc"),
		doctree.NewLeaf("de", doctree.MarkBold),
	))

	tests := []struct {
		name     string
		offset   int
		affinity doctree.Affinity
		want     doctree.Point
	}{
		{"inside first leaf", 1, doctree.AffinityBackward, pt(0, 0, 1)},
		{"boundary backward", 3, doctree.AffinityBackward, pt(0, 0, 3)},
		{"boundary forward", 3, doctree.AffinityForward, pt(0, 1, 0)},
		{"end forward clamps to last leaf", 5, doctree.AffinityForward, pt(0, 1, 2)},
		{"past end clamps", 9, doctree.AffinityBackward, pt(0, 1, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := doc.PointAt(0, tc.offset, tc.affinity)
			assert.Equal(t, tc.want, got)
			if tc.offset <= 5 {
				assert.Equal(t, tc.offset, doc.BlockOffset(got))
			}
		})
	}
}

func TestDocument_Resolve(t *testing.T) {
	t.Parallel()

	doc := doctree.Default("")

	leaf := doc.Resolve(pt(0, 0, 30))
	assert.Equal(t, doctree.DefaultText, leaf.Text)

	assert.PanicsWithError(t, "invariant violated at 0.0: offset 31 out of range", func() {
		doc.Resolve(pt(0, 0, 31))
	})
	assert.PanicsWithError(t, "invariant violated at 1.0: block index out of range", func() {
		doc.Resolve(pt(1, 0, 0))
	})
}

func TestFindText(t *testing.T) {
	t.Parallel()

	doc := doctree.NewDocument(
		doctree.NewElement(doctree.BlockParagraph, doctree.NewLeaf("first line")),
		doctree.NewElement(doctree.BlockParagraph,
			doctree.NewLeaf("sé"),
			doctree.NewLeaf("cond", doctree.MarkItalic),
			doctree.NewLeaf(" line"),
		),
	)

	sel, ok := doctree.FindText(doc, "line")
	require.True(t, ok)
	assert.Equal(t, pt(0, 0, 6), sel.Anchor)
	assert.Equal(t, pt(0, 0, 10), sel.Focus)

	sel, ok = doctree.FindText(doc, "écon")
	require.True(t, ok)
	assert.Equal(t, pt(1, 0, 1), sel.Anchor)
	assert.Equal(t, pt(1, 1, 3), sel.Focus)

	sel, ok = doctree.FindText(doc, "cond")
	require.True(t, ok)
	assert.Equal(t, pt(1, 1, 0), sel.Anchor)
	assert.Equal(t, pt(1, 1, 4), sel.Focus)

	_, ok = doctree.FindText(doc, "line\nsé")
	assert.False(t, ok)

	_, ok = doctree.FindText(doc, "")
	assert.False(t, ok)
}

func TestSelectAll(t *testing.T) {
	t.Parallel()

	doc := doctree.NewDocument(
		doctree.NewElement(doctree.BlockParagraph, doctree.NewLeaf("ab")),
		doctree.NewElement(doctree.BlockQuote, doctree.NewLeaf("c"), doctree.NewLeaf("def", doctree.MarkCode)),
	)

	sel, ok := doctree.SelectAll(doc)
	require.True(t, ok)
	assert.Equal(t, pt(0, 0, 0), sel.Anchor)
	assert.Equal(t, pt(1, 1, 3), sel.Focus)

	_, ok = doctree.SelectAll(doctree.NewDocument())
	assert.False(t, ok)
}
