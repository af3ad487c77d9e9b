package field

import (
	"maps"
	"slices"
)

// PointSet is a sparse set of points grouped by row. Membership tests cost
// two map lookups; iteration is in row-major order.
//
// The zero value is not usable; create sets with NewPointSet.
type PointSet struct {
	rows map[int]map[int]struct{}
	n    int
}

// NewPointSet returns a set holding pts.
func NewPointSet(pts ...Point) *PointSet {
	s := &PointSet{rows: make(map[int]map[int]struct{})}
	for _, p := range pts {
		s.Add(p)
	}
	return s
}

// PointSetOf returns a set holding every coordinate of a w×h grid.
func PointSetOf(w, h int) *PointSet {
	s := &PointSet{rows: make(map[int]map[int]struct{}, h)}
	for y := 0; y < h; y++ {
		row := make(map[int]struct{}, w)
		for x := 0; x < w; x++ {
			row[x] = struct{}{}
		}
		if len(row) > 0 {
			s.rows[y] = row
		}
		s.n += len(row)
	}
	return s
}

// Len returns the number of points in the set.
func (s *PointSet) Len() int { return s.n }

// Contains reports whether p is in the set.
func (s *PointSet) Contains(p Point) bool {
	row, ok := s.rows[p.Y]
	if !ok {
		return false
	}
	_, ok = row[p.X]
	return ok
}

// Add inserts p and reports whether it was absent.
func (s *PointSet) Add(p Point) bool {
	row, ok := s.rows[p.Y]
	if !ok {
		row = make(map[int]struct{})
		s.rows[p.Y] = row
	}
	if _, dup := row[p.X]; dup {
		return false
	}
	row[p.X] = struct{}{}
	s.n++
	return true
}

// Remove deletes p and reports whether it was present.
func (s *PointSet) Remove(p Point) bool {
	row, ok := s.rows[p.Y]
	if !ok {
		return false
	}
	if _, ok := row[p.X]; !ok {
		return false
	}
	delete(row, p.X)
	if len(row) == 0 {
		delete(s.rows, p.Y)
	}
	s.n--
	return true
}

// Points returns the members in row-major order.
func (s *PointSet) Points() []Point {
	out := make([]Point, 0, s.n)
	for _, y := range slices.Sorted(maps.Keys(s.rows)) {
		for _, x := range slices.Sorted(maps.Keys(s.rows[y])) {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}
