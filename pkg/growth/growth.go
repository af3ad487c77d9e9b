package growth

import (
	"math"

	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/rng"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// =============================================================================
// Parameters
// =============================================================================

// Params controls the growth process.
type Params struct {
	// MinSensitivity stops growth once the step size is no longer above it.
	MinSensitivity int `json:"min_sensitivity" toml:"min_sensitivity"`
	// MaxMoveSize bounds the length of a single walk move in cells.
	MaxMoveSize int `json:"max_move_size" toml:"max_move_size"`
	// MaxSegmentLength bounds the number of moves in one walk.
	MaxSegmentLength int `json:"max_segment_length" toml:"max_segment_length"`
	// MaxPassesPerStep forces the step to halve after this many passes.
	MaxPassesPerStep int `json:"max_passes_per_step" toml:"max_passes_per_step"`
	// ImpactThreshold is the impact ratio below which the step halves.
	ImpactThreshold float64 `json:"impact_threshold" toml:"impact_threshold"`
	// Turn is the standard deviation, in radians, of the heading change
	// applied before every move.
	Turn float64 `json:"turn" toml:"turn"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		MinSensitivity:   12,
		MaxMoveSize:      3,
		MaxSegmentLength: 512,
		MaxPassesPerStep: 32,
		ImpactThreshold:  0.05,
		Turn:             0.35,
	}
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	checks := []error{
		errors.ValidateNonNegative("min_sensitivity", float64(p.MinSensitivity)),
		errors.ValidatePositive("max_move_size", float64(p.MaxMoveSize)),
		errors.ValidatePositive("max_segment_length", float64(p.MaxSegmentLength)),
		errors.ValidatePositive("max_passes_per_step", float64(p.MaxPassesPerStep)),
		errors.ValidateFraction("impact_threshold", p.ImpactThreshold),
		errors.ValidateNonNegative("turn", p.Turn),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Report
// =============================================================================

// PassStats describes one growth pass.
type PassStats struct {
	Step        int     `json:"step"`
	Sensitivity int     `json:"sensitivity"`
	Candidates  int     `json:"candidates"`
	Impacts     int     `json:"impacts"`
	Ratio       float64 `json:"ratio"`
}

// Report lists every pass Grow ran, in order.
type Report struct {
	Passes []PassStats `json:"passes"`
}

// Impacts returns the total number of impacts over all passes.
func (r Report) Impacts() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Impacts
	}
	return n
}

// =============================================================================
// Growth
// =============================================================================

// Grow carves rivers into g until the step size falls to MinSensitivity.
// The grid is modified in place.
func Grow(g *field.Grid[terrain.Availability], p Params, r *rng.RNG) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}
	var rep Report
	step := min(g.Width(), g.Height())
	passes := 0
	for step > p.MinSensitivity {
		st := GrowPass(g, step, p, r)
		rep.Passes = append(rep.Passes, st)
		passes++
		if st.Ratio < p.ImpactThreshold || passes >= p.MaxPassesPerStep {
			step /= 2
			passes = 0
		}
	}
	return rep, nil
}

// GrowPass runs a single pass at the given step size with sensitivity equal
// to the step. Params are used as given; call Validate first.
func GrowPass(g *field.Grid[terrain.Availability], step int, p Params, r *rng.RNG) PassStats {
	st := PassStats{Step: step, Sensitivity: step}
	if step <= 0 {
		return st
	}
	candidates := place(g, step, r)
	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	ix := newWaterIndex(g, st.Sensitivity)
	w := walker{g: g, ix: ix, p: p, r: r, radius: st.Sensitivity}
	for _, c := range candidates {
		if w.run(c) {
			st.Impacts++
		}
	}
	st.Candidates = len(candidates)
	if st.Candidates > 0 {
		st.Ratio = float64(st.Impacts) / float64(st.Candidates)
	}
	return st
}

// place returns one jittered candidate per step×step cell.
func place(g *field.Grid[terrain.Availability], step int, r *rng.RNG) []field.Point {
	var out []field.Point
	for cy := 0; cy < g.Height(); cy += step {
		for cx := 0; cx < g.Width(); cx += step {
			x := min(cx+r.IntN(step), g.Width()-1)
			y := min(cy+r.IntN(step), g.Height()-1)
			out = append(out, field.Pt(x, y))
		}
	}
	return out
}

// walker performs the correlated random walk for one candidate at a time.
type walker struct {
	g      *field.Grid[terrain.Availability]
	ix     *waterIndex
	p      Params
	r      *rng.RNG
	radius int
}

// run walks from start and reports whether the walk ended in an impact.
func (w *walker) run(start field.Point) bool {
	if w.g.AtPoint(start) != terrain.Available || w.ix.near(start, w.radius) {
		return false
	}
	x, y := float64(start.X), float64(start.Y)
	heading := w.r.Angle()
	for move := 0; move < w.p.MaxSegmentLength; move++ {
		heading += w.r.Normal(0, w.p.Turn)
		length := 1 + w.r.Float64()*float64(w.p.MaxMoveSize-1)
		x += length * math.Cos(heading)
		y += length * math.Sin(heading)

		cell := field.Pt(int(math.Round(x)), int(math.Round(y)))
		if !field.InBounds[terrain.Availability](w.g, cell.X, cell.Y) {
			return false
		}
		if w.g.AtPoint(cell) == terrain.Unavailable || w.touchesIllegal(cell) {
			return false
		}
		if !w.ix.near(cell, w.radius) {
			continue
		}
		target, ok := w.ix.pick(cell, w.radius, w.r)
		if !ok {
			return false
		}
		w.line(cell, target)
		return true
	}
	return false
}

func (w *walker) touchesIllegal(p field.Point) bool {
	if w.g.AtPoint(p) == terrain.Illegal {
		return true
	}
	for _, d := range field.Neighbors8 {
		q := p.Add(d)
		if field.InBounds[terrain.Availability](w.g, q.X, q.Y) && w.g.AtPoint(q) == terrain.Illegal {
			return true
		}
	}
	return false
}

// line marks the cells between from and to as water, sampling every half
// cell so consecutive marks stay 8-connected. Illegal cells are left alone.
func (w *walker) line(from, to field.Point) {
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	n := int(math.Ceil(2 * math.Hypot(dx, dy)))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		p := field.Pt(
			int(math.Round(float64(from.X)+t*dx)),
			int(math.Round(float64(from.Y)+t*dy)),
		)
		if w.g.AtPoint(p) == terrain.Available {
			w.g.SetPoint(p, terrain.Unavailable)
			w.ix.add(p)
		}
	}
}
