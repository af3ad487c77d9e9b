package spline

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/fluvia/pkg/errors"
)

// minKnotStep keeps coincident control points from producing zero-width
// knot intervals.
const minKnotStep = 1e-6

// Spline is a centripetal Catmull-Rom curve through its control points. The
// first and last points are phantoms: they shape the curve ends but are not
// interpolated.
type Spline struct {
	points []mgl64.Vec4
	knots  []float64
}

// New builds a spline from at least four control points.
func New(points []mgl64.Vec4) (*Spline, error) {
	if len(points) < 4 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "spline needs at least 4 control points, got %d", len(points))
	}
	knots := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		d := points[i].Vec2().Sub(points[i-1].Vec2()).Len()
		knots[i] = knots[i-1] + max(math.Sqrt(d), minKnotStep)
	}
	return &Spline{points: points, knots: knots}, nil
}

// Points returns the control points, phantoms included.
func (s *Spline) Points() []mgl64.Vec4 { return s.points }

// Knots returns the knot sequence, one knot per control point.
func (s *Spline) Knots() []float64 { return s.knots }

// Segments returns the number of interpolated segments.
func (s *Spline) Segments() int { return len(s.points) - 3 }

// At evaluates the curve at u in [0, 1]. Values outside are clamped.
func (s *Spline) At(u float64) mgl64.Vec4 {
	lo, hi := s.knots[1], s.knots[len(s.knots)-2]
	return s.atKnot(lo + mgl64.Clamp(u, 0, 1)*(hi-lo))
}

func (s *Spline) atKnot(t float64) mgl64.Vec4 {
	n := len(s.points)
	t = mgl64.Clamp(t, s.knots[1], s.knots[n-2])
	// Segment i spans knots[i]..knots[i+1] for i in [1, n-3].
	i := sort.SearchFloat64s(s.knots, t) - 1
	i = max(1, min(i, n-3))

	p0, p1, p2, p3 := s.points[i-1], s.points[i], s.points[i+1], s.points[i+2]
	t0, t1, t2, t3 := s.knots[i-1], s.knots[i], s.knots[i+1], s.knots[i+2]

	a1 := lerp(p0, p1, t0, t1, t)
	a2 := lerp(p1, p2, t1, t2, t)
	a3 := lerp(p2, p3, t2, t3, t)
	b1 := lerp(a1, a2, t0, t2, t)
	b2 := lerp(a2, a3, t1, t3, t)
	return lerp(b1, b2, t1, t2, t)
}

// lerp blends a at ta and b at tb, evaluated at t.
func lerp(a, b mgl64.Vec4, ta, tb, t float64) mgl64.Vec4 {
	return a.Mul((tb - t) / (tb - ta)).Add(b.Mul((t - ta) / (tb - ta)))
}

// Sample returns n points evenly spaced in parameter over [0, 1].
func (s *Spline) Sample(n int) []mgl64.Vec4 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []mgl64.Vec4{s.At(0)}
	}
	out := make([]mgl64.Vec4, n)
	for i := range out {
		out[i] = s.At(float64(i) / float64(n-1))
	}
	return out
}

// SampleDensity returns k points per segment, evenly spaced within each
// segment's knot interval, plus the final point.
func (s *Spline) SampleDensity(k int) []mgl64.Vec4 {
	if k <= 0 {
		return nil
	}
	out := make([]mgl64.Vec4, 0, k*s.Segments()+1)
	for i := 1; i <= s.Segments(); i++ {
		t0, t1 := s.knots[i], s.knots[i+1]
		for j := 0; j < k; j++ {
			out = append(out, s.atKnot(t0+(t1-t0)*float64(j)/float64(k)))
		}
	}
	return append(out, s.At(1))
}

// Length approximates the planar arc length using n samples per segment.
func (s *Spline) Length(n int) float64 {
	pts := s.SampleDensity(max(1, n))
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Vec2().Sub(pts[i-1].Vec2()).Len()
	}
	return total
}

// phantom extrapolates a point past here, away from from.
func phantom(here, from mgl64.Vec4) mgl64.Vec4 {
	return here.Mul(2).Sub(from)
}
