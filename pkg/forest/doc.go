// Package forest provides an arena-backed rooted tree.
//
// # Overview
//
// River networks are trees: the mouth is the root and every upstream cell is
// a descendant. A [Tree] stores its nodes in one contiguous slice and links
// them by [NodeID] index (parent, first/last child, previous/next sibling)
// instead of pointers, so there are no back-references to dangle and a tree
// can be copied or discarded as a single value.
//
// # Invariants
//
// A tree is always acyclic and every node other than the root appears in its
// parent's child list exactly once. [Tree.AddChild] and [Tree.Reparent] are
// the only mutators and both maintain these invariants; Reparent rejects any
// move that would make a node its own ancestor. Reparenting is an O(1) link
// rewrite plus an O(depth) ancestor walk for the cycle check.
//
// # Metrics
//
// [Tree.Depths] and [Tree.Sizes] compute per-node subtree height and subtree
// node count in one iterative post-order pass, so very deep, thin rivers do
// not grow the goroutine stack. [Tree.Prune] produces a derived tree; the
// original is never modified by pruning.
//
// # Debugging output
//
// [ToDOT] renders a tree as a Graphviz digraph and [RenderSVG] lays it out
// with github.com/goccy/go-graphviz.
//
// # Concurrency
//
// A Tree is not safe for concurrent mutation. Once built, concurrent reads
// are safe.
package forest
