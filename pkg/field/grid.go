package field

import "github.com/matzehuels/fluvia/pkg/errors"

// Grid stores a 2D grid of values in row-major order. It is the only mutable
// Field; every other field in this package is a view.
//
// Grid is not safe for concurrent writes. Growth and smoothing passes need
// exclusive access for the duration of a pass.
type Grid[T any] struct {
	w, h int
	data []T
}

// NewGrid allocates a zero-valued grid with the given dimensions.
func NewGrid[T any](w, h int) (*Grid[T], error) {
	if err := errors.ValidateDimensions(w, h); err != nil {
		return nil, err
	}
	return newGrid[T](w, h), nil
}

// FilledGrid allocates a grid with every cell set to v.
func FilledGrid[T any](w, h int, v T) (*Grid[T], error) {
	g, err := NewGrid[T](w, h)
	if err != nil {
		return nil, err
	}
	g.Fill(v)
	return g, nil
}

// GridFrom wraps an existing row-major slice. len(data) must equal w*h.
func GridFrom[T any](w, h int, data []T) (*Grid[T], error) {
	if err := errors.ValidateDimensions(w, h); err != nil {
		return nil, err
	}
	if len(data) != w*h {
		return nil, errors.New(errors.ErrCodeDimensionMismatch, "backing slice has %d cells, want %d", len(data), w*h)
	}
	return &Grid[T]{w: w, h: h, data: data}, nil
}

func newGrid[T any](w, h int) *Grid[T] {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid[T]{w: w, h: h, data: make([]T, w*h)}
}

// Materialize copies every cell of f into a new grid.
func Materialize[T any](f Field[T]) *Grid[T] {
	g := newGrid[T](f.Width(), f.Height())
	for y := 0; y < g.h; y++ {
		row := g.data[y*g.w : (y+1)*g.w]
		for x := range row {
			row[x] = f.At(x, y)
		}
	}
	return g
}

func (g *Grid[T]) Width() int  { return g.w }
func (g *Grid[T]) Height() int { return g.h }

// At returns the value at (x, y).
func (g *Grid[T]) At(x, y int) T {
	checkBounds(x, y, g.w, g.h)
	return g.data[y*g.w+x]
}

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) {
	checkBounds(x, y, g.w, g.h)
	g.data[y*g.w+x] = v
}

// AtPoint is At(p.X, p.Y).
func (g *Grid[T]) AtPoint(p Point) T { return g.At(p.X, p.Y) }

// SetPoint is Set(p.X, p.Y, v).
func (g *Grid[T]) SetPoint(p Point, v T) { g.Set(p.X, p.Y, v) }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.w + x }

// Data exposes the backing slice so callers can read or write cells in bulk.
func (g *Grid[T]) Data() []T { return g.data }

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of g.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{w: g.w, h: g.h, data: data}
}

// Ensure Grid implements Field.
var _ Field[int] = (*Grid[int])(nil)
