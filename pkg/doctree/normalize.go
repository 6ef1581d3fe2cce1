package doctree

// NormalizeElement merges adjacent leaves with identical marks and drops
// empty leaves, keeping one leaf when the element would otherwise be empty.
func NormalizeElement(el *Element) {
	out := el.Children[:0:0]
	for _, leaf := range el.Children {
		if leaf.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Marks == leaf.Marks {
			out[n-1].Text += leaf.Text
			continue
		}
		out = append(out, leaf)
	}
	if len(out) == 0 {
		// Keep the marks of the first leaf so an empty styled line stays styled.
		var marks MarkSet
		if len(el.Children) > 0 {
			marks = el.Children[0].Marks
		}
		out = append(out, Leaf{Marks: marks})
	}
	el.Children = out
}

// Normalize applies NormalizeElement to every element of the document.
func Normalize(d *Document) {
	for i := range d.Elements {
		NormalizeElement(&d.Elements[i])
	}
}
