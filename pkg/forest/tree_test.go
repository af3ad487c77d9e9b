package forest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fluvia/pkg/errors"
)

// sample builds:
//
//	a
//	├── b
//	│   ├── d
//	│   └── e
//	│       └── f
//	└── c
func sample() (*Tree[string], map[string]NodeID) {
	t := New("a")
	ids := map[string]NodeID{"a": t.Root()}
	ids["b"] = t.AddChild(ids["a"], "b")
	ids["c"] = t.AddChild(ids["a"], "c")
	ids["d"] = t.AddChild(ids["b"], "d")
	ids["e"] = t.AddChild(ids["b"], "e")
	ids["f"] = t.AddChild(ids["e"], "f")
	return t, ids
}

func values(t *Tree[string], ids []NodeID) string {
	var s []string
	for _, id := range ids {
		s = append(s, t.Value(id))
	}
	return strings.Join(s, "")
}

func TestTreeStructure(t *testing.T) {
	tr, ids := sample()

	assert.Equal(t, 6, tr.Len())
	assert.Equal(t, None, tr.Parent(tr.Root()))
	assert.Equal(t, ids["b"], tr.Parent(ids["d"]))
	assert.Equal(t, "bc", values(tr, tr.Children(ids["a"])))
	assert.Equal(t, 2, tr.ChildCount(ids["b"]))
	assert.True(t, tr.IsLeaf(ids["c"]))
	assert.False(t, tr.IsLeaf(ids["e"]))
	assert.Equal(t, ids["b"], tr.FirstChild(ids["a"]))
	assert.Equal(t, ids["c"], tr.NextSibling(ids["b"]))
	assert.Equal(t, None, tr.NextSibling(ids["c"]))
	assert.Equal(t, 3, tr.Level(ids["f"]))
}

func TestPreOrder(t *testing.T) {
	tr, _ := sample()
	assert.Equal(t, "abdefc", values(tr, tr.PreOrder()))
}

func TestEdges(t *testing.T) {
	tr, _ := sample()
	var got []string
	tr.Edges(func(p, c NodeID) { got = append(got, tr.Value(p)+tr.Value(c)) })
	assert.Equal(t, []string{"ab", "ac", "bd", "be", "ef"}, got)
}

func TestDepthsAndSizes(t *testing.T) {
	tr, ids := sample()
	depths := tr.Depths()
	sizes := tr.Sizes()

	tests := []struct {
		name        string
		depth, size int
	}{
		{"a", 4, 6},
		{"b", 3, 4},
		{"c", 1, 1},
		{"d", 1, 1},
		{"e", 2, 2},
		{"f", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.depth, depths[ids[tt.name]], "depth")
			assert.Equal(t, tt.size, sizes[ids[tt.name]], "size")
		})
	}
	assert.Equal(t, 4, tr.Depth())
}

func TestShapeStats(t *testing.T) {
	tr, ids := sample()
	assert.Equal(t, Stats{Nodes: 6, Depth: 4, Forks: 2, Leaves: 3}, tr.Stats())
	assert.Equal(t, "dfc", values(tr, tr.Leaves()))
	assert.Equal(t, ids["f"], tr.DeepestLeaf(tr.Root(), tr.Depths()))
	assert.Equal(t, ids["c"], tr.DeepestLeaf(ids["c"], tr.Depths()))
	assert.Equal(t, ids["b"], tr.DeepestChild(tr.Root(), tr.Depths()))
	assert.Equal(t, None, tr.DeepestChild(ids["d"], tr.Depths()))
}

func TestReparent(t *testing.T) {
	tr, ids := sample()

	require.NoError(t, tr.Reparent(ids["e"], ids["c"]))
	assert.Equal(t, ids["c"], tr.Parent(ids["e"]))
	assert.Equal(t, "d", values(tr, tr.Children(ids["b"])))
	assert.Equal(t, "e", values(tr, tr.Children(ids["c"])))
	assert.Equal(t, "abdcef", values(tr, tr.PreOrder()))
	assert.Equal(t, 6, tr.Len())

	// Moving under the current parent is a no-op.
	require.NoError(t, tr.Reparent(ids["e"], ids["c"]))
	assert.Equal(t, 1, tr.ChildCount(ids["c"]))
}

func TestReparentMiddleChild(t *testing.T) {
	tr := New(0)
	a := tr.AddChild(tr.Root(), 1)
	b := tr.AddChild(tr.Root(), 2)
	c := tr.AddChild(tr.Root(), 3)

	require.NoError(t, tr.Reparent(b, a))
	assert.Equal(t, []NodeID{a, c}, tr.Children(tr.Root()))
	assert.Equal(t, []NodeID{b}, tr.Children(a))

	d := tr.AddChild(tr.Root(), 4)
	assert.Equal(t, []NodeID{a, c, d}, tr.Children(tr.Root()))
}

func TestReparentRejectsCycles(t *testing.T) {
	tr, ids := sample()
	before := values(tr, tr.PreOrder())

	tests := []struct {
		name     string
		id, dest NodeID
	}{
		{"root", ids["a"], ids["c"]},
		{"self", ids["b"], ids["b"]},
		{"descendant", ids["b"], ids["f"]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tr.Reparent(tt.id, tt.dest)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidTree, errors.GetCode(err))
			assert.Equal(t, before, values(tr, tr.PreOrder()))
		})
	}
}

func TestInvalidNodePanics(t *testing.T) {
	tr, _ := sample()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Equal(t, errors.ErrCodeOutOfBounds, errors.GetCode(r.(error)))
	}()
	tr.Value(42)
}

func TestPrune(t *testing.T) {
	tr, ids := sample()
	sizes := tr.Sizes()

	pruned, origin := tr.Prune(func(id NodeID) bool { return sizes[id] >= 2 })
	assert.Equal(t, "abe", values(pruned, pruned.PreOrder()))
	assert.Equal(t, []NodeID{ids["a"], ids["b"], ids["e"]}, origin)

	// Dropping a node drops its descendants even when they pass the filter.
	pruned, _ = tr.Prune(func(id NodeID) bool { return id != ids["b"] })
	assert.Equal(t, "ac", values(pruned, pruned.PreOrder()))

	// The source tree is untouched.
	assert.Equal(t, 6, tr.Len())
}

func TestPruneKeepsRoot(t *testing.T) {
	tr, _ := sample()
	pruned, origin := tr.Prune(func(NodeID) bool { return false })
	assert.Equal(t, 1, pruned.Len())
	assert.Equal(t, "a", pruned.Value(pruned.Root()))
	assert.Equal(t, []NodeID{0}, origin)
}

func TestDeepTreeDoesNotRecurse(t *testing.T) {
	tr := New(0)
	id := tr.Root()
	for i := 1; i < 200000; i++ {
		id = tr.AddChild(id, i)
	}
	assert.Equal(t, 200000, tr.Depth())
	assert.Equal(t, 200000, tr.Sizes()[tr.Root()])
}

func TestToDOT(t *testing.T) {
	tr, _ := sample()
	dot := ToDOT([]*Tree[string]{tr}, func(s string) string { return s })

	assert.True(t, strings.HasPrefix(dot, "digraph Rivers {"))
	assert.Contains(t, dot, "subgraph cluster_0")
	assert.Contains(t, dot, `t0_n0 [label="a", shape=box];`)
	assert.Contains(t, dot, "t0_n4 -> t0_n5;")
	assert.Equal(t, 5, strings.Count(dot, "->"))
}
