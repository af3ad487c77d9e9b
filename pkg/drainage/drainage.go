// Package drainage assigns every cell the cell its water flows to in one hop.
//
// Ocean cells drain to themselves. Land cells drain to the nearest non-Land
// cell by 8-connected hop count through Land, found with one multi-source
// BFS seeded from every non-Land cell in row-major order; ties go to the
// first source to reach a cell. Land cells that cannot reach water drain to
// themselves. Shore cells inside a river tree drain to their tree parent and
// river mouths drain to themselves. Shore cells outside every tree drain to
// themselves.
package drainage

import (
	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// Resolve computes the drainage field for a classification and its river
// trees.
func Resolve(types field.Field[terrain.LandType], rivers []*forest.Tree[field.Point]) (*field.Grid[field.Point], error) {
	w, h := types.Width(), types.Height()
	out, err := field.NewGrid[field.Point](w, h)
	if err != nil {
		return nil, err
	}
	reached := make([]bool, w*h)
	var queue []field.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := field.Pt(x, y)
			out.SetPoint(p, p)
			if types.At(x, y) != terrain.Land {
				reached[out.Index(x, y)] = true
				queue = append(queue, p)
			}
		}
	}

	for i := 0; i < len(queue); i++ {
		p := queue[i]
		target := out.AtPoint(p)
		for _, d := range field.Neighbors8 {
			q := p.Add(d)
			if !field.InBounds(types, q.X, q.Y) {
				continue
			}
			k := out.Index(q.X, q.Y)
			if reached[k] || types.At(q.X, q.Y) != terrain.Land {
				continue
			}
			reached[k] = true
			out.SetPoint(q, target)
			queue = append(queue, q)
		}
	}

	for ti, t := range rivers {
		var bad error
		t.Edges(func(parent, child forest.NodeID) {
			c := t.Value(child)
			if bad != nil {
				return
			}
			if !field.InBounds(types, c.X, c.Y) {
				bad = errors.New(errors.ErrCodeInvalidTree, "river %d: node %v outside %dx%d grid", ti, c, w, h)
				return
			}
			out.SetPoint(c, t.Value(parent))
		})
		if bad != nil {
			return nil, bad
		}
	}
	return out, nil
}

// Path follows drainage from p until it reaches a cell that drains to
// itself and returns the visited cells, p first. It stops after w*h hops so
// a malformed field cannot loop forever.
func Path(drain field.Field[field.Point], p field.Point) []field.Point {
	limit := drain.Width() * drain.Height()
	path := []field.Point{p}
	for len(path) <= limit {
		next := drain.At(p.X, p.Y)
		if next == p {
			break
		}
		path = append(path, next)
		p = next
	}
	return path
}
