// Package doctree provides the document model of richedit.
// It defines:
// - Document: the ordered sequence of top-level elements
// - Element: a block (paragraph, quote, code-block) holding leaves
// - Leaf: text plus a set of character marks (bold, italic, code)
// - Point and Range: selection positions addressing leaves by path
//
// Documents persist as JSON through Serialize and Deserialize.
package doctree
