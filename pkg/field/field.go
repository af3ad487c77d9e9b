package field

import (
	"fmt"

	"github.com/matzehuels/fluvia/pkg/errors"
)

// InvalidDimension is the width and height reported by a composition built
// from zero operands.
const InvalidDimension = -1

// Field is a read-only 2D grid. Implementations must return the same value
// for the same coordinate until their backing storage is written.
type Field[T any] interface {
	Width() int
	Height() int
	// At returns the value at column x, row y. It panics with an
	// OUT_OF_BOUNDS error when the point lies outside the field.
	At(x, y int) T
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// DistSq returns the squared Euclidean distance between p and q.
func (p Point) DistSq(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Neighbors8 lists the 8-connected offsets in the fixed order every
// flood fill and BFS in this module probes them.
var Neighbors8 = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Rect is an axis-aligned rectangle of cells with origin (X, Y).
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X < r.X+r.W && p.Y < r.Y+r.H
}

// Within reports whether r lies entirely inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.W > 0 && r.H > 0 &&
		r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.W <= outer.X+outer.W && r.Y+r.H <= outer.Y+outer.H
}

// Bounds returns the rectangle covered by f.
func Bounds[T any](f Field[T]) Rect {
	return Rect{W: f.Width(), H: f.Height()}
}

// InBounds reports whether (x, y) can be read from f.
func InBounds[T any](f Field[T], x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width() && y < f.Height()
}

// Lookup is the checked form of f.At.
func Lookup[T any](f Field[T], x, y int) (T, error) {
	if !InBounds(f, x, y) {
		var zero T
		return zero, errors.OutOfBounds(x, y, f.Width(), f.Height())
	}
	return f.At(x, y), nil
}

// SameShape reports whether a and b have identical extents.
func SameShape[A, B any](a Field[A], b Field[B]) bool {
	return a.Width() == b.Width() && a.Height() == b.Height()
}

// Equal reports whether a and b have the same shape and cell values.
func Equal[T comparable](a, b Field[T]) bool {
	if !SameShape(a, b) {
		return false
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}

// checkBounds panics when (x, y) is outside a w×h extent.
func checkBounds(x, y, w, h int) {
	if x < 0 || y < 0 || x >= w || y >= h {
		panic(errors.OutOfBounds(x, y, w, h))
	}
}
