package classify

import (
	"github.com/matzehuels/fluvia/pkg/field"
)

// Region is a maximal 8-connected set of cells sharing one value.
type Region[T comparable] struct {
	Value T
	// Points are listed in flood discovery order; Points[0] is the first
	// cell of the region in row-major order.
	Points []field.Point
}

// Group partitions f into 8-connected regions of equal value. Regions are
// returned in row-major order of their first cell.
func Group[T comparable](f field.Field[T]) []Region[T] {
	w, h := f.Width(), f.Height()
	unaffiliated := field.PointSetOf(w, h)
	var regions []Region[T]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := field.Pt(x, y)
			if !unaffiliated.Contains(start) {
				continue
			}
			regions = append(regions, flood(f, start, unaffiliated))
		}
	}
	return regions
}

// flood collects the region containing start, removing its cells from
// unaffiliated.
func flood[T comparable](f field.Field[T], start field.Point, unaffiliated *field.PointSet) Region[T] {
	value := f.At(start.X, start.Y)
	unaffiliated.Remove(start)
	points := []field.Point{start}
	for i := 0; i < len(points); i++ {
		p := points[i]
		for _, d := range field.Neighbors8 {
			q := p.Add(d)
			if !field.InBounds(f, q.X, q.Y) || f.At(q.X, q.Y) != value {
				continue
			}
			if unaffiliated.Remove(q) {
				points = append(points, q)
			}
		}
	}
	return Region[T]{Value: value, Points: points}
}
