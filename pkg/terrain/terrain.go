// Package terrain defines the cell categories the hydrology stages exchange.
//
// [Availability] is the tri-state grid the growth engine carves rivers into;
// [LandType] is the classification derived from it. [FromSketch] converts a
// caller's coastline sketch into the initial availability grid.
package terrain

import (
	"fmt"

	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
)

// Availability marks whether growth may place river cells on a cell.
type Availability uint8

const (
	// Available cells are land the growth engine may carve.
	Available Availability = iota
	// Unavailable cells are water: the sea in the sketch plus every carved
	// river cell.
	Unavailable
	// Illegal cells must never be reached by a river.
	Illegal
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case Illegal:
		return "illegal"
	default:
		return fmt.Sprintf("availability(%d)", uint8(a))
	}
}

// LandType is the classification of a cell after growth.
type LandType uint8

const (
	Land LandType = iota
	// Shore is water whose neighbourhood is mostly land: rivers and
	// near-coast water.
	Shore
	// Ocean is open water.
	Ocean
)

func (t LandType) String() string {
	switch t {
	case Land:
		return "land"
	case Shore:
		return "shore"
	case Ocean:
		return "ocean"
	default:
		return fmt.Sprintf("landtype(%d)", uint8(t))
	}
}

// IsWater reports whether t is Shore or Ocean.
func (t LandType) IsWater() bool { return t == Shore || t == Ocean }

// Glyph returns a single-rune rendering used by terminal previews.
func (t LandType) Glyph() rune {
	switch t {
	case Land:
		return '.'
	case Shore:
		return '~'
	default:
		return ' '
	}
}

// Predicate classifies a sketch sample.
type Predicate func(v float64) bool

// BelowLevel returns a predicate matching samples strictly below level.
func BelowLevel(level float64) Predicate {
	return func(v float64) bool { return v < level }
}

// Never matches no sample.
func Never(float64) bool { return false }

// FromSketch converts a sketch into an availability grid. Cells matching
// illegal become Illegal, cells matching water become Unavailable, the rest
// Available. Illegal wins when both match. A nil illegal predicate marks no
// cell Illegal; water must not be nil.
func FromSketch(sketch field.Field[float64], water, illegal Predicate) (*field.Grid[Availability], error) {
	if water == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "water predicate is required")
	}
	if illegal == nil {
		illegal = Never
	}
	g, err := field.NewGrid[Availability](sketch.Width(), sketch.Height())
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v := sketch.At(x, y)
			switch {
			case illegal(v):
				g.Set(x, y, Illegal)
			case water(v):
				g.Set(x, y, Unavailable)
			}
		}
	}
	return g, nil
}
