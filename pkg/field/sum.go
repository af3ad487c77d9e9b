package field

import (
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/matzehuels/fluvia/pkg/errors"
)

// Number is the set of element types that can be summed.
type Number interface {
	constraints.Integer | constraints.Float
}

// composition is the elementwise sum of same-shaped operands.
type composition[T Number] struct {
	fields []Field[T]
	w, h   int
}

// Sum returns a view whose cells are the elementwise sum of fields.
//
// All operands must share the first operand's shape; a mismatch returns a
// DIMENSION_MISMATCH error. With zero operands the view reports
// InvalidDimension for both extents and every read panics.
func Sum[T Number](fields ...Field[T]) (Field[T], error) {
	c, err := compose(fields)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func compose[T Number](fields []Field[T]) (*composition[T], error) {
	if len(fields) == 0 {
		return &composition[T]{w: InvalidDimension, h: InvalidDimension}, nil
	}
	w, h := fields[0].Width(), fields[0].Height()
	for i, f := range fields[1:] {
		if err := errors.ValidateSameShape(operandLabel(i+1), w, h, f.Width(), f.Height()); err != nil {
			return nil, err
		}
	}
	ops := make([]Field[T], len(fields))
	copy(ops, fields)
	return &composition[T]{fields: ops, w: w, h: h}, nil
}

func operandLabel(i int) string {
	return "operand " + strconv.Itoa(i)
}

func (c *composition[T]) Width() int  { return c.w }
func (c *composition[T]) Height() int { return c.h }

func (c *composition[T]) At(x, y int) T {
	checkBounds(x, y, c.w, c.h)
	var sum T
	for _, f := range c.fields {
		sum += f.At(x, y)
	}
	return sum
}

// normalized divides a composition by a maximum fixed at construction.
type normalized[T constraints.Float] struct {
	*composition[T]
	max T
}

// Normalize returns the sum of fields divided by its own maximum.
//
// The maximum is found by scanning every cell once, here; operands must not
// change afterward or reads will no longer be bounded by 1. For non-negative,
// non-constant inputs every cell reads within [0, 1] and at least one reads
// exactly 1. A maximum of zero leaves values undivided.
func Normalize[T constraints.Float](fields ...Field[T]) (Field[T], error) {
	c, err := compose(fields)
	if err != nil {
		return nil, err
	}
	n := &normalized[T]{composition: c, max: 1}
	if c.w <= 0 || c.h <= 0 {
		return n, nil
	}
	peak := c.At(0, 0)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if v := c.At(x, y); v > peak {
				peak = v
			}
		}
	}
	if peak != 0 {
		n.max = peak
	}
	return n, nil
}

func (n *normalized[T]) At(x, y int) T {
	return n.composition.At(x, y) / n.max
}

// Max returns the divisor found at construction.
func (n *normalized[T]) Max() T { return n.max }
