package field

// transformation is the view returned by Map and MapAt.
type transformation[S, T any] struct {
	src Field[S]
	fn  func(x, y int, v S) T
}

// Map returns a view whose cells are fn applied to the cells of src.
func Map[S, T any](src Field[S], fn func(v S) T) Field[T] {
	return &transformation[S, T]{src: src, fn: func(_, _ int, v S) T { return fn(v) }}
}

// MapAt is Map with the cell position passed to fn.
func MapAt[S, T any](src Field[S], fn func(x, y int, v S) T) Field[T] {
	return &transformation[S, T]{src: src, fn: fn}
}

func (t *transformation[S, T]) Width() int  { return t.src.Width() }
func (t *transformation[S, T]) Height() int { return t.src.Height() }

func (t *transformation[S, T]) At(x, y int) T {
	return t.fn(x, y, t.src.At(x, y))
}

// generated is a field computed entirely from coordinates.
type generated[T any] struct {
	w, h int
	fn   func(x, y int) T
}

// FromFunc returns a w×h view whose cell (x, y) is fn(x, y).
func FromFunc[T any](w, h int, fn func(x, y int) T) Field[T] {
	return &generated[T]{w: w, h: h, fn: fn}
}

// Constant returns a w×h view where every cell reads v.
func Constant[T any](w, h int, v T) Field[T] {
	return FromFunc(w, h, func(int, int) T { return v })
}

func (g *generated[T]) Width() int  { return g.w }
func (g *generated[T]) Height() int { return g.h }

func (g *generated[T]) At(x, y int) T {
	checkBounds(x, y, g.w, g.h)
	return g.fn(x, y)
}
