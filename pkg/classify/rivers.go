package classify

import (
	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// Rivers builds one spanning tree per Shore region of types that touches an
// Ocean cell. It also returns how many Shore regions were skipped because no
// cell of theirs borders the Ocean.
func Rivers(types field.Field[terrain.LandType]) (trees []*forest.Tree[field.Point], landlocked int) {
	for _, region := range Group(types) {
		if region.Value != terrain.Shore {
			continue
		}
		root, ok := mouth(types, region.Points)
		if !ok {
			landlocked++
			continue
		}
		trees = append(trees, span(types, region.Points, root))
	}
	return trees, landlocked
}

// mouth returns the last point of the region adjacent to an Ocean cell.
func mouth(types field.Field[terrain.LandType], points []field.Point) (field.Point, bool) {
	var root field.Point
	found := false
	for _, p := range points {
		for _, d := range field.Neighbors8 {
			q := p.Add(d)
			if field.InBounds(types, q.X, q.Y) && types.At(q.X, q.Y) == terrain.Ocean {
				root, found = p, true
				break
			}
		}
	}
	return root, found
}

// span builds the BFS spanning tree of the region rooted at root.
func span(types field.Field[terrain.LandType], points []field.Point, root field.Point) *forest.Tree[field.Point] {
	member := field.NewPointSet(points...)
	t := forest.New(root)
	member.Remove(root)
	queue := []forest.NodeID{t.Root()}
	for i := 0; i < len(queue); i++ {
		id := queue[i]
		p := t.Value(id)
		for _, d := range field.Neighbors8 {
			q := p.Add(d)
			if !field.InBounds(types, q.X, q.Y) {
				continue
			}
			if member.Remove(q) {
				queue = append(queue, t.AddChild(id, q))
			}
		}
	}
	return t
}

// =============================================================================
// Classify
// =============================================================================

// Params controls land typing.
type Params struct {
	// Sensitivity is the radius, in cells, of the voting disc.
	Sensitivity int `json:"sensitivity" toml:"sensitivity"`
	// ShoreThreshold is the Land fraction above which water is Shore.
	ShoreThreshold float64 `json:"shore_threshold" toml:"shore_threshold"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{Sensitivity: 2, ShoreThreshold: 0.5}
}

// Result holds everything the classifier derives from a grid.
type Result struct {
	Types      *field.Grid[terrain.LandType]
	Rivers     []*forest.Tree[field.Point]
	Landlocked int
}

// Classify computes land types and river trees for a frozen availability
// grid.
func Classify(avail field.Field[terrain.Availability], p Params) (Result, error) {
	if err := errors.ValidateDimensions(avail.Width(), avail.Height()); err != nil {
		return Result{}, err
	}
	types, err := LandTypes(avail, p.Sensitivity, p.ShoreThreshold)
	if err != nil {
		return Result{}, err
	}
	rivers, landlocked := Rivers(types)
	return Result{Types: types, Rivers: rivers, Landlocked: landlocked}, nil
}
