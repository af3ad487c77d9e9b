package forest

import (
	"github.com/matzehuels/fluvia/pkg/errors"
)

// NodeID indexes a node within its Tree.
type NodeID int

// None is the NodeID of a missing parent, child or sibling.
const None NodeID = -1

type node[T any] struct {
	value                   T
	parent                  NodeID
	first, last, prev, next NodeID
}

// Tree is a rooted tree whose nodes live in a single arena.
//
// The zero value is not usable; create trees with New.
type Tree[T any] struct {
	nodes []node[T]
}

// New creates a tree holding a single root node with the given value.
func New[T any](root T) *Tree[T] {
	t := &Tree[T]{}
	t.nodes = append(t.nodes, node[T]{value: root, parent: None, first: None, last: None, prev: None, next: None})
	return t
}

// Root returns the root node, which is always NodeID 0.
func (t *Tree[T]) Root() NodeID { return 0 }

// Len returns the number of nodes in the tree.
func (t *Tree[T]) Len() int { return len(t.nodes) }

// Value returns the value stored at id.
func (t *Tree[T]) Value(id NodeID) T { return t.at(id).value }

// Parent returns the parent of id, or None for the root.
func (t *Tree[T]) Parent(id NodeID) NodeID { return t.at(id).parent }

// FirstChild returns the first child of id, or None for a leaf.
func (t *Tree[T]) FirstChild(id NodeID) NodeID { return t.at(id).first }

// NextSibling returns the sibling after id, or None.
func (t *Tree[T]) NextSibling(id NodeID) NodeID { return t.at(id).next }

// Children returns the children of id in insertion order.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.at(id).first; c != None; c = t.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of children of id.
func (t *Tree[T]) ChildCount(id NodeID) int {
	n := 0
	for c := t.at(id).first; c != None; c = t.nodes[c].next {
		n++
	}
	return n
}

// IsLeaf reports whether id has no children.
func (t *Tree[T]) IsLeaf(id NodeID) bool { return t.at(id).first == None }

// AddChild appends a new node holding v under parent and returns its id.
func (t *Tree[T]) AddChild(parent NodeID, v T) NodeID {
	t.at(parent)
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node[T]{value: v, parent: None, first: None, last: None, prev: None, next: None})
	t.link(id, parent)
	return id
}

// Reparent moves id (with its subtree) under newParent. Moving the root or
// moving a node beneath its own descendant returns an INVALID_TREE error and
// leaves the tree unchanged.
func (t *Tree[T]) Reparent(id, newParent NodeID) error {
	t.at(id)
	t.at(newParent)
	if id == t.Root() {
		return errors.New(errors.ErrCodeInvalidTree, "cannot reparent the root")
	}
	for a := newParent; a != None; a = t.nodes[a].parent {
		if a == id {
			return errors.New(errors.ErrCodeInvalidTree, "reparenting node %d under %d would create a cycle", id, newParent)
		}
	}
	if t.nodes[id].parent == newParent {
		return nil
	}
	t.unlink(id)
	t.link(id, newParent)
	return nil
}

// link appends a detached node to parent's child list.
func (t *Tree[T]) link(id, parent NodeID) {
	n, p := &t.nodes[id], &t.nodes[parent]
	n.parent = parent
	n.prev = p.last
	n.next = None
	if p.last != None {
		t.nodes[p.last].next = id
	} else {
		p.first = id
	}
	p.last = id
}

// unlink detaches id from its parent's child list.
func (t *Tree[T]) unlink(id NodeID) {
	n := &t.nodes[id]
	p := &t.nodes[n.parent]
	if n.prev != None {
		t.nodes[n.prev].next = n.next
	} else {
		p.first = n.next
	}
	if n.next != None {
		t.nodes[n.next].prev = n.prev
	} else {
		p.last = n.prev
	}
	n.parent, n.prev, n.next = None, None, None
}

func (t *Tree[T]) at(id NodeID) *node[T] {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(errors.New(errors.ErrCodeOutOfBounds, "node %d outside tree of %d nodes", id, len(t.nodes)))
	}
	return &t.nodes[id]
}

// PreOrder returns every node reachable from the root, parents before
// children, siblings in insertion order.
func (t *Tree[T]) PreOrder() []NodeID {
	out := make([]NodeID, 0, len(t.nodes))
	stack := []NodeID{t.Root()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, id)
		for c := t.nodes[id].last; c != None; c = t.nodes[c].prev {
			stack = append(stack, c)
		}
	}
	return out
}

// Level returns the number of edges between id and the root.
func (t *Tree[T]) Level(id NodeID) int {
	n := 0
	for a := t.at(id).parent; a != None; a = t.nodes[a].parent {
		n++
	}
	return n
}

// Edges calls fn for every parent→child pair in pre-order.
func (t *Tree[T]) Edges(fn func(parent, child NodeID)) {
	for _, id := range t.PreOrder() {
		for c := t.nodes[id].first; c != None; c = t.nodes[c].next {
			fn(id, c)
		}
	}
}
