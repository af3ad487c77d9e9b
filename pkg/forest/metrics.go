package forest

// postOrder returns every node with children before parents.
func (t *Tree[T]) postOrder() []NodeID {
	pre := t.PreOrder()
	out := make([]NodeID, len(pre))
	for i, id := range pre {
		out[len(pre)-1-i] = id
	}
	return out
}

// Depths returns, for every node, the number of nodes on the longest
// downward path starting at it. Leaves have depth 1.
func (t *Tree[T]) Depths() []int {
	depth := make([]int, len(t.nodes))
	for _, id := range t.postOrder() {
		d := 0
		for c := t.nodes[id].first; c != None; c = t.nodes[c].next {
			d = max(d, depth[c])
		}
		depth[id] = d + 1
	}
	return depth
}

// Sizes returns, for every node, the number of nodes in its subtree
// including itself.
func (t *Tree[T]) Sizes() []int {
	size := make([]int, len(t.nodes))
	for _, id := range t.postOrder() {
		s := 1
		for c := t.nodes[id].first; c != None; c = t.nodes[c].next {
			s += size[c]
		}
		size[id] = s
	}
	return size
}

// Depth returns the depth of the root: the node count of the longest
// root-to-leaf path.
func (t *Tree[T]) Depth() int { return t.Depths()[t.Root()] }

// Forks returns the number of nodes with more than one child.
func (t *Tree[T]) Forks() int {
	n := 0
	for i := range t.nodes {
		if f := t.nodes[i].first; f != None && t.nodes[f].next != None {
			n++
		}
	}
	return n
}

// Leaves returns every childless node in pre-order.
func (t *Tree[T]) Leaves() []NodeID {
	var out []NodeID
	for _, id := range t.PreOrder() {
		if t.nodes[id].first == None {
			out = append(out, id)
		}
	}
	return out
}

// DeepestChild returns the child of id with the greatest depth, or None for
// a leaf. Ties go to the earliest child. depths must come from t.Depths.
func (t *Tree[T]) DeepestChild(id NodeID, depths []int) NodeID {
	best := None
	for c := t.at(id).first; c != None; c = t.nodes[c].next {
		if best == None || depths[c] > depths[best] {
			best = c
		}
	}
	return best
}

// DeepestLeaf returns the leaf at the end of the longest downward path from
// id, following DeepestChild.
func (t *Tree[T]) DeepestLeaf(id NodeID, depths []int) NodeID {
	for {
		next := t.DeepestChild(id, depths)
		if next == None {
			return id
		}
		id = next
	}
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes  int `json:"nodes"`
	Depth  int `json:"depth"`
	Forks  int `json:"forks"`
	Leaves int `json:"leaves"`
}

// Stats returns node count, depth, fork and leaf counts.
func (t *Tree[T]) Stats() Stats {
	return Stats{
		Nodes:  t.Len(),
		Depth:  t.Depth(),
		Forks:  t.Forks(),
		Leaves: len(t.Leaves()),
	}
}

// Prune returns a derived tree holding the root and every node for which
// keep returns true and whose ancestors were all kept. Node order within each
// child list is preserved. The second return value maps each derived NodeID
// to its NodeID in t.
func (t *Tree[T]) Prune(keep func(id NodeID) bool) (*Tree[T], []NodeID) {
	root := t.Root()
	out := New(t.nodes[root].value)
	origin := []NodeID{root}

	type item struct{ src, dst NodeID }
	stack := []item{{root, out.Root()}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var pending []item
		for c := t.nodes[it.src].first; c != None; c = t.nodes[c].next {
			if !keep(c) {
				continue
			}
			dst := out.AddChild(it.dst, t.nodes[c].value)
			origin = append(origin, c)
			pending = append(pending, item{c, dst})
		}
		for i := len(pending) - 1; i >= 0; i-- {
			stack = append(stack, pending[i])
		}
	}
	return out, origin
}
