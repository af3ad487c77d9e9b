package height

import (
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
)

// BranchLengths returns, for every node, the length in nodes of the branch
// it belongs to. A branch starts at the root or at a non-deepest child of a
// fork and follows deepest children to a leaf.
func BranchLengths[T any](t *forest.Tree[T], depths []int) []int {
	out := make([]int, t.Len())
	out[t.Root()] = depths[t.Root()]
	for _, id := range t.PreOrder() {
		next := t.DeepestChild(id, depths)
		for c := t.FirstChild(id); c != forest.None; c = t.NextSibling(c) {
			if c == next {
				out[c] = out[id]
			} else {
				out[c] = depths[c]
			}
		}
	}
	return out
}

// Waterways returns derived river trees without branches shorter than
// minLength nodes. Trees whose depth is below minLength are dropped. The
// input trees are not modified.
func Waterways(rivers []*forest.Tree[field.Point], minLength int) []*forest.Tree[field.Point] {
	var out []*forest.Tree[field.Point]
	for _, t := range rivers {
		depths := t.Depths()
		if depths[t.Root()] < minLength {
			continue
		}
		lengths := BranchLengths(t, depths)
		pruned, _ := t.Prune(func(id forest.NodeID) bool { return lengths[id] >= minLength })
		out = append(out, pruned)
	}
	return out
}
