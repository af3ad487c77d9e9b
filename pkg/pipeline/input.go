package pipeline

import (
	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// Input holds the caller-supplied fields of a run.
type Input struct {
	// Base is the elevation the height stage starts from.
	Base field.Field[float64]
	// Sketch is the coarse map the availability grid is derived from.
	Sketch field.Field[float64]
	// Water marks sketch values that start as open water. Required.
	Water terrain.Predicate
	// Illegal marks sketch values rivers must never enter. Nil means none.
	Illegal terrain.Predicate
}

// Validate checks that the fields are present and share one shape.
func (in Input) Validate() error {
	if in.Base == nil || in.Sketch == nil {
		return errors.New(errors.ErrCodeInvalidInput, "base and sketch fields are required")
	}
	if in.Water == nil {
		return errors.New(errors.ErrCodeInvalidInput, "water predicate is required")
	}
	w, h := in.Sketch.Width(), in.Sketch.Height()
	if err := errors.ValidateDimensions(w, h); err != nil {
		return err
	}
	if w*h > MaxCells {
		return errors.New(errors.ErrCodeInvalidInput, "grid %dx%d exceeds %d cells", w, h, MaxCells)
	}
	return errors.ValidateSameShape("base", w, h, in.Base.Width(), in.Base.Height())
}

// NoiseField returns the simplex field a synthesized input uses for both
// base and sketch.
func NoiseField(opts Options) field.Field[float64] {
	return field.Simplex(opts.Width, opts.Height, int64(opts.Seed), field.DefaultSimplexOptions())
}

// InputFrom builds an input whose sketch is base itself: cells below
// seaLevel start as water and nothing is illegal.
func InputFrom(base field.Field[float64], seaLevel float64) Input {
	return Input{
		Base:    base,
		Sketch:  base,
		Water:   terrain.BelowLevel(seaLevel),
		Illegal: terrain.Never,
	}
}
