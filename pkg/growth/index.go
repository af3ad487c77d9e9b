package growth

import (
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/rng"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// waterIndex buckets Unavailable cells so radius queries only visit nearby
// buckets. Buckets are half the query radius wide, which lets most queries
// answer from bucket bounds alone.
type waterIndex struct {
	size       int
	cols, rows int
	buckets    [][]field.Point
}

func newWaterIndex(g *field.Grid[terrain.Availability], radius int) *waterIndex {
	size := max(1, radius/2)
	ix := &waterIndex{
		size: size,
		cols: (g.Width() + size - 1) / size,
		rows: (g.Height() + size - 1) / size,
	}
	ix.buckets = make([][]field.Point, ix.cols*ix.rows)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.At(x, y) == terrain.Unavailable {
				ix.add(field.Pt(x, y))
			}
		}
	}
	return ix
}

func (ix *waterIndex) add(p field.Point) {
	b := (p.Y/ix.size)*ix.cols + p.X/ix.size
	ix.buckets[b] = append(ix.buckets[b], p)
}

// visit calls fn for every bucket that may hold a point within radius of p,
// along with whether the whole bucket lies inside the radius. It stops when
// fn returns false.
func (ix *waterIndex) visit(p field.Point, radius int, fn func(bucket []field.Point, inside bool) bool) {
	r2 := radius * radius
	bx0, bx1 := max(0, (p.X-radius)/ix.size), min(ix.cols-1, (p.X+radius)/ix.size)
	by0, by1 := max(0, (p.Y-radius)/ix.size), min(ix.rows-1, (p.Y+radius)/ix.size)
	for by := by0; by <= by1; by++ {
		for bx := bx0; bx <= bx1; bx++ {
			bucket := ix.buckets[by*ix.cols+bx]
			if len(bucket) == 0 {
				continue
			}
			x0, y0 := bx*ix.size, by*ix.size
			x1, y1 := x0+ix.size-1, y0+ix.size-1
			near := sq(gap(p.X, x0, x1)) + sq(gap(p.Y, y0, y1))
			if near > r2 {
				continue
			}
			far := sq(max(abs(p.X-x0), abs(p.X-x1))) + sq(max(abs(p.Y-y0), abs(p.Y-y1)))
			if !fn(bucket, far <= r2) {
				return
			}
		}
	}
}

// near reports whether any indexed point lies within radius of p.
func (ix *waterIndex) near(p field.Point, radius int) bool {
	r2 := radius * radius
	found := false
	ix.visit(p, radius, func(bucket []field.Point, inside bool) bool {
		if inside {
			found = true
			return false
		}
		for _, q := range bucket {
			if p.DistSq(q) <= r2 {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// pick returns a uniformly chosen indexed point within radius of p using
// reservoir sampling over the buckets in a fixed order.
func (ix *waterIndex) pick(p field.Point, radius int, r *rng.RNG) (field.Point, bool) {
	r2 := radius * radius
	var chosen field.Point
	seen := 0
	ix.visit(p, radius, func(bucket []field.Point, _ bool) bool {
		for _, q := range bucket {
			if p.DistSq(q) > r2 {
				continue
			}
			seen++
			if r.IntN(seen) == 0 {
				chosen = q
			}
		}
		return true
	})
	return chosen, seen > 0
}

// gap returns the distance from v to the interval [lo, hi].
func gap(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}

func sq(v int) int { return v * v }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
