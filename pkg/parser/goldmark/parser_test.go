package goldmark_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richedit/pkg/doctree"
	"github.com/yaklabco/richedit/pkg/export"
	"github.com/yaklabco/richedit/pkg/parser/goldmark"
)

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", goldmark.FlavorCommonMark, goldmark.FlavorCommonMark},
		{"gfm", goldmark.FlavorGFM, goldmark.FlavorGFM},
		{"invalid defaults to gfm", "invalid", goldmark.FlavorGFM},
		{"empty defaults to gfm", "", goldmark.FlavorGFM},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantFlavor, goldmark.New(tc.flavor).Flavor())
		})
	}
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	para := doctree.BlockParagraph
	leaf := doctree.NewLeaf

	tests := []struct {
		name  string
		input string
		want  *doctree.Document
	}{
		{
			name:  "plain paragraph",
			input: "A line of text in a paragraph.\n",
			want:  doctree.Default(""),
		},
		{
			name:  "inline marks",
			input: "A *line* of **bold** and `code` and ***both***.",
			want: doctree.NewDocument(doctree.NewElement(para,
				leaf("A "),
				leaf("line", doctree.MarkItalic),
				leaf(" of "),
				leaf("bold", doctree.MarkBold),
				leaf(" and "),
				leaf("code", doctree.MarkCode),
				leaf(" and "),
				leaf("both", doctree.MarkBold, doctree.MarkItalic),
				leaf("."),
			)),
		},
		{
			name:  "heading is a bold paragraph",
			input: "# Title\n\nBody",
			want: doctree.NewDocument(
				doctree.NewElement(para, leaf("Title", doctree.MarkBold)),
				doctree.NewElement(para, leaf("Body")),
			),
		},
		{
			name:  "block quote paragraphs",
			input: "> first\n>\n> second *one*",
			want: doctree.NewDocument(
				doctree.NewElement(doctree.BlockQuote, leaf("first")),
				doctree.NewElement(doctree.BlockQuote, leaf("second "), leaf("one", doctree.MarkItalic)),
			),
		},
		{
			name:  "fenced code",
			input: "```go\nfunc main() {\n\tprintln(\"*\")\n}\n```\n",
			want: doctree.NewDocument(
				doctree.NewElement(doctree.BlockCodeBlock, leaf("func main() {\n\tprintln(\"*\")\n}")),
			),
		},
		{
			name:  "list items become paragraphs",
			input: "- one\n- two\n  - nested\n",
			want: doctree.NewDocument(
				doctree.NewElement(para, leaf("one")),
				doctree.NewElement(para, leaf("two")),
				doctree.NewElement(para, leaf("nested")),
			),
		},
		{
			name:  "soft break becomes a space",
			input: "first\nsecond",
			want:  doctree.NewDocument(doctree.NewElement(para, leaf("first second"))),
		},
		{
			name:  "escapes and links keep their text",
			input: `\*not emphasis\* see [the docs](https://example.com)`,
			want:  doctree.NewDocument(doctree.NewElement(para, leaf("*not emphasis* see the docs"))),
		},
		{
			name:  "thematic break and html are dropped",
			input: "one\n\n---\n\n<div>x</div>\n\ntwo",
			want: doctree.NewDocument(
				doctree.NewElement(para, leaf("one")),
				doctree.NewElement(para, leaf("two")),
			),
		},
		{
			name:  "empty input",
			input: "",
			want:  doctree.NewDocument(doctree.NewElement(para)),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), []byte(tc.input))
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(doc), "got %+v", doc.Elements)
		})
	}
}

func TestParser_Parse_GFMTable(t *testing.T) {
	t.Parallel()

	input := "| a | b |\n|---|---|\n| 1 | 2 |\n"

	doc, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), []byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 2)
	assert.Equal(t, "a | b", doc.Elements[0].Text())
	assert.True(t, doc.Elements[0].Children[0].Marks.Has(doctree.MarkBold))
	assert.Equal(t, "1 | 2", doc.Elements[1].Text())
}

func TestParser_Parse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := goldmark.New("").Parse(ctx, []byte("text"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParser_MarkdownExportRoundTrip(t *testing.T) {
	t.Parallel()

	doc := doctree.NewDocument(
		doctree.NewElement(doctree.BlockParagraph,
			doctree.NewLeaf("A "),
			doctree.NewLeaf("line", doctree.MarkItalic),
			doctree.NewLeaf(" with 2*3 and "),
			doctree.NewLeaf("code", doctree.MarkCode),
		),
		doctree.NewElement(doctree.BlockQuote, doctree.NewLeaf("quoted", doctree.MarkBold)),
		doctree.NewElement(doctree.BlockCodeBlock, doctree.NewLeaf("x := 1")),
	)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, doc, export.FormatMarkdown))

	parsed, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.True(t, doc.Equal(parsed), "markdown:\n%s\ngot %+v", buf.String(), parsed.Elements)
}
