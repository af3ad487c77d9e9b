package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// parse builds an availability grid from rows of '.' (Available),
// '~' (Unavailable) and '#' (Illegal).
func parse(t *testing.T, rows ...string) *field.Grid[terrain.Availability] {
	t.Helper()
	g, err := field.NewGrid[terrain.Availability](len(rows[0]), len(rows))
	require.NoError(t, err)
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case '~':
				g.Set(x, y, terrain.Unavailable)
			case '#':
				g.Set(x, y, terrain.Illegal)
			}
		}
	}
	return g
}

func TestGroup(t *testing.T) {
	g, err := field.GridFrom(4, 3, []int{
		1, 1, 0, 2,
		0, 1, 0, 2,
		0, 0, 1, 2,
	})
	require.NoError(t, err)

	regions := Group[int](g)
	require.Len(t, regions, 3)

	// The diagonal 1 at (2,2) joins the first region through (1,1).
	assert.Equal(t, 1, regions[0].Value)
	assert.ElementsMatch(t, []field.Point{{0, 0}, {1, 0}, {1, 1}, {2, 2}}, regions[0].Points)
	assert.Equal(t, field.Pt(0, 0), regions[0].Points[0])

	// (2,1) and (1,2) are diagonal neighbours, so all zeros form one region.
	assert.Equal(t, 0, regions[1].Value)
	assert.Len(t, regions[1].Points, 5)
	assert.Equal(t, 2, regions[2].Value)
	assert.Len(t, regions[2].Points, 3)

	total := 0
	for _, r := range regions {
		total += len(r.Points)
	}
	assert.Equal(t, 12, total)
}

func TestGroupSeparatesRegions(t *testing.T) {
	g, err := field.GridFrom(5, 1, []int{7, 7, 0, 7, 7})
	require.NoError(t, err)
	regions := Group[int](g)
	require.Len(t, regions, 3)
	assert.Equal(t, []field.Point{{0, 0}, {1, 0}}, regions[0].Points)
	assert.Equal(t, []field.Point{{3, 0}, {4, 0}}, regions[2].Points)
}

func TestLandTypesSingleSeed(t *testing.T) {
	g := parse(t,
		"~....",
		".....",
		".....",
	)
	types, err := LandTypes(g, 1, 0.5)
	require.NoError(t, err)

	// The disc of radius 1 at (0,0) keeps (0,0), (1,0) and (0,1) in the grid:
	// two of three cells are land, 2/3 > 0.5.
	assert.Equal(t, terrain.Shore, types.At(0, 0))
	for _, p := range []field.Point{{1, 0}, {0, 1}, {1, 1}} {
		assert.Equal(t, terrain.Land, types.At(p.X, p.Y), "neighbour %v", p)
	}
}

func TestLandTypesVote(t *testing.T) {
	g := parse(t,
		"~~~~~",
		"~~~~~",
		"~~~~~",
		"..~..",
		"..~..",
	)
	types, err := LandTypes(g, 1, 0.5)
	require.NoError(t, err)

	tests := []struct {
		p    field.Point
		want terrain.LandType
	}{
		{field.Pt(0, 0), terrain.Ocean},
		{field.Pt(2, 1), terrain.Ocean},
		// (2,4): disc holds (2,4),(1,4),(3,4),(2,3); two land of four.
		{field.Pt(2, 4), terrain.Ocean},
		{field.Pt(0, 3), terrain.Land},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, types.At(tt.p.X, tt.p.Y), "cell %v", tt.p)
	}

	types, err = LandTypes(g, 1, 0.4)
	require.NoError(t, err)
	assert.Equal(t, terrain.Shore, types.At(2, 4))
}

func TestLandTypesRejectsBadParams(t *testing.T) {
	g := parse(t, "~.")
	_, err := LandTypes(g, -1, 0.5)
	assert.Equal(t, errors.ErrCodeInvalidOptions, errors.GetCode(err))
	_, err = LandTypes(g, 1, 2)
	assert.Equal(t, errors.ErrCodeInvalidOptions, errors.GetCode(err))
}

// river is a straight channel running from the open sea into the land.
func river(t *testing.T) *field.Grid[terrain.Availability] {
	return parse(t,
		"~~~~~~~~~",
		"~~~~~~~~~",
		"~~~~~~~~~",
		"....~....",
		"....~....",
		"....~....",
		"...~.~...",
		"..~...~..",
		".........",
	)
}

func TestClassifyRiver(t *testing.T) {
	res, err := Classify(river(t), Params{Sensitivity: 1, ShoreThreshold: 0.3})
	require.NoError(t, err)
	require.Len(t, res.Rivers, 1)
	assert.Zero(t, res.Landlocked)

	tr := res.Rivers[0]
	root := tr.Value(tr.Root())
	assert.Equal(t, terrain.Shore, res.Types.AtPoint(root))

	// The root borders the ocean.
	touches := false
	for _, d := range field.Neighbors8 {
		q := root.Add(d)
		if field.InBounds[terrain.LandType](res.Types, q.X, q.Y) && res.Types.AtPoint(q) == terrain.Ocean {
			touches = true
		}
	}
	assert.True(t, touches, "root %v does not border the ocean", root)

	// Every Shore cell of the region is in the tree exactly once and every
	// edge joins 8-adjacent cells.
	shore := field.Count[terrain.LandType](res.Types, func(v terrain.LandType) bool { return v == terrain.Shore })
	assert.Equal(t, shore, tr.Len())
	seen := field.NewPointSet()
	for _, id := range tr.PreOrder() {
		assert.True(t, seen.Add(tr.Value(id)))
	}
	tr.Edges(func(p, c forest.NodeID) {
		d := tr.Value(p).Sub(tr.Value(c))
		assert.LessOrEqual(t, d.X*d.X+d.Y*d.Y, 2)
	})
	assert.Equal(t, 7, tr.Len())
	assert.Equal(t, field.Pt(4, 3), root)
	assert.Equal(t, 1, tr.Forks())
}

func TestRiversMouthIsLastOceanNeighbour(t *testing.T) {
	types, err := field.GridFrom(3, 3, []terrain.LandType{
		terrain.Ocean, terrain.Ocean, terrain.Ocean,
		terrain.Shore, terrain.Shore, terrain.Shore,
		terrain.Land, terrain.Land, terrain.Land,
	})
	require.NoError(t, err)

	trees, landlocked := Rivers(types)
	require.Len(t, trees, 1)
	assert.Zero(t, landlocked)
	// Flood order is (0,1),(1,1),(2,1); all touch the ocean and the last wins.
	assert.Equal(t, field.Pt(2, 1), trees[0].Value(trees[0].Root()))
	assert.Equal(t, 3, trees[0].Len())
}

func TestRiversLandlocked(t *testing.T) {
	types, err := field.GridFrom(3, 3, []terrain.LandType{
		terrain.Land, terrain.Land, terrain.Land,
		terrain.Land, terrain.Shore, terrain.Land,
		terrain.Land, terrain.Land, terrain.Land,
	})
	require.NoError(t, err)

	trees, landlocked := Rivers(types)
	assert.Empty(t, trees)
	assert.Equal(t, 1, landlocked)
}

func TestRiversAtGridEdge(t *testing.T) {
	// Shore cells on every border must not probe outside the grid.
	types, err := field.GridFrom(2, 2, []terrain.LandType{
		terrain.Shore, terrain.Ocean,
		terrain.Shore, terrain.Shore,
	})
	require.NoError(t, err)

	trees, _ := Rivers(types)
	require.Len(t, trees, 1)
	assert.Equal(t, 3, trees[0].Len())
}
