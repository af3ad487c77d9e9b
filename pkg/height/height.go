package height

import (
	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/rng"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// =============================================================================
// Parameters
// =============================================================================

// Params controls height synthesis.
type Params struct {
	// Epsilon lifts Land above the water it drains into.
	Epsilon float64 `json:"epsilon" toml:"epsilon"`
	// SmoothingPasses is the number of land-only blur passes.
	SmoothingPasses int `json:"smoothing_passes" toml:"smoothing_passes"`
	// SmoothingRadius is the blur radius of each pass.
	SmoothingRadius float64 `json:"smoothing_radius" toml:"smoothing_radius"`
	// MinWaterwayLength is the shortest branch Waterways keeps.
	MinWaterwayLength int `json:"min_waterway_length" toml:"min_waterway_length"`
	// Grade is the minimum rise per river level.
	Grade float64 `json:"grade" toml:"grade"`

	// Carve returns an extra rise for each river node. Negative values are
	// treated as 0. Nil adds nothing.
	Carve func() float64 `json:"-" toml:"-"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		Epsilon:           0.05,
		SmoothingPasses:   10,
		SmoothingRadius:   2,
		MinWaterwayLength: 4,
	}
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	checks := []error{
		errors.ValidateNonNegative("epsilon", p.Epsilon),
		errors.ValidateNonNegative("smoothing_passes", float64(p.SmoothingPasses)),
		errors.ValidateNonNegative("smoothing_radius", p.SmoothingRadius),
		errors.ValidateNonNegative("min_waterway_length", float64(p.MinWaterwayLength)),
		errors.ValidateNonNegative("grade", p.Grade),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// UniformCarve returns a carve generator drawing uniformly from [0, limit).
func UniformCarve(r *rng.RNG, limit float64) func() float64 {
	return func() float64 { return r.Range(0, limit) }
}

// =============================================================================
// Synthesis
// =============================================================================

// Input bundles the fields height synthesis reads. All fields must share
// one shape.
type Input struct {
	Types    field.Field[terrain.LandType]
	Drainage field.Field[field.Point]
	Rivers   []*forest.Tree[field.Point]
	Base     field.Field[float64]
}

func (in Input) validate() error {
	if in.Types == nil || in.Drainage == nil || in.Base == nil {
		return errors.New(errors.ErrCodeInvalidInput, "types, drainage and base fields are required")
	}
	w, h := in.Types.Width(), in.Types.Height()
	if err := errors.ValidateDimensions(w, h); err != nil {
		return err
	}
	if err := errors.ValidateSameShape("drainage", w, h, in.Drainage.Width(), in.Drainage.Height()); err != nil {
		return err
	}
	return errors.ValidateSameShape("base", w, h, in.Base.Width(), in.Base.Height())
}

// Synthesize builds the elevation field.
func Synthesize(in Input, p Params) (*field.Grid[float64], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	w, h := in.Types.Width(), in.Types.Height()
	elev := field.Materialize(in.Base)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if in.Types.At(x, y) == terrain.Ocean {
				elev.Set(x, y, 0)
			}
		}
	}

	for i, t := range in.Rivers {
		if err := raise(elev, t, in.Base, p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "river %d", i)
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if in.Types.At(x, y) != terrain.Land {
				continue
			}
			d := in.Drainage.At(x, y)
			if field.InBounds(in.Types, d.X, d.Y) && in.Types.At(d.X, d.Y) == terrain.Shore {
				elev.Set(x, y, elev.AtPoint(d)+p.Epsilon)
			} else {
				elev.Set(x, y, in.Base.At(x, y)+p.Epsilon)
			}
		}
	}

	smooth(elev, in.Types, p)

	if err := Check(elev, in.Rivers); err != nil {
		return nil, err
	}
	return elev, nil
}

// branch is a pending river branch: the path leaving fork through first.
type branch struct {
	fork, first forest.NodeID
}

// raise assigns elevations to every node of t. The mouth is set to 0.
func raise(elev *field.Grid[float64], t *forest.Tree[field.Point], base field.Field[float64], p Params) error {
	for _, id := range t.PreOrder() {
		if v := t.Value(id); !field.InBounds[float64](elev, v.X, v.Y) {
			return errors.OutOfBounds(v.X, v.Y, elev.Width(), elev.Height())
		}
	}
	depths := t.Depths()
	elev.SetPoint(t.Value(t.Root()), 0)

	var stack []branch
	for _, c := range t.Children(t.Root()) {
		stack = append(stack, branch{t.Root(), c})
	}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		start := elev.AtPoint(t.Value(b.fork))
		src := t.Value(t.DeepestLeaf(b.first, depths))
		source := max(start, base.At(src.X, src.Y))
		inc := max((source-start)/float64(depths[b.first]), p.Grade)

		e := start
		for cur := b.first; cur != forest.None; {
			e += inc + carve(p)
			elev.SetPoint(t.Value(cur), e)
			next := t.DeepestChild(cur, depths)
			for c := t.FirstChild(cur); c != forest.None; c = t.NextSibling(c) {
				if c != next {
					stack = append(stack, branch{cur, c})
				}
			}
			cur = next
		}
	}
	return nil
}

func carve(p Params) float64 {
	if p.Carve == nil {
		return 0
	}
	return max(0, p.Carve())
}

// smooth blurs elev and writes the result back onto Land cells.
func smooth(elev *field.Grid[float64], types field.Field[terrain.LandType], p Params) {
	for i := 0; i < p.SmoothingPasses; i++ {
		blurred := field.Materialize(field.Blur[float64](elev, p.SmoothingRadius, field.DefaultBoxCount))
		for y := 0; y < elev.Height(); y++ {
			for x := 0; x < elev.Width(); x++ {
				if types.At(x, y) == terrain.Land {
					elev.Set(x, y, blurred.At(x, y))
				}
			}
		}
	}
}

// Check verifies that elevation never decreases from parent to child on
// any river edge.
func Check(elev field.Field[float64], rivers []*forest.Tree[field.Point]) error {
	for i, t := range rivers {
		var err error
		t.Edges(func(parent, child forest.NodeID) {
			if err != nil {
				return
			}
			pp, cp := t.Value(parent), t.Value(child)
			pe, ce := elev.At(pp.X, pp.Y), elev.At(cp.X, cp.Y)
			if ce < pe {
				err = errors.New(errors.ErrCodeInvariant,
					"river %d flows uphill: %v at %.4f is below parent %v at %.4f", i, cp, ce, pp, pe)
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}
