package doctree

// LeafEntry describes a leaf visited by Walk.
type LeafEntry struct {
	// Path addresses the leaf.
	Path Path

	// Start and End are the leaf bounds as character offsets within its element.
	Start int
	End   int

	// Leaf is a copy of the visited leaf.
	Leaf Leaf
}

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(entry LeafEntry) error

// Walk visits every leaf of the document in order.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(d *Document, walkFunc WalkFunc) error {
	if d == nil {
		return nil
	}
	for block, el := range d.Elements {
		start := 0
		for i, leaf := range el.Children {
			end := start + leaf.Len()
			entry := LeafEntry{
				Path:  Path{Block: block, Leaf: i},
				Start: start,
				End:   end,
				Leaf:  leaf,
			}
			if err := walkFunc(entry); err != nil {
				return err
			}
			start = end
		}
	}
	return nil
}

// FindAll returns all leaves matching the predicate.
func FindAll(d *Document, predicate func(entry LeafEntry) bool) []LeafEntry {
	var result []LeafEntry

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(d, func(entry LeafEntry) error {
		if predicate(entry) {
			result = append(result, entry)
		}
		return nil
	})

	return result
}
