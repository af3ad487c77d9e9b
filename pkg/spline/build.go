package spline

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/rng"
)

// Params controls spline construction.
type Params struct {
	// MinSizeForFork is the smallest subtree that gets its own curve, and
	// the depth at or below which a fork ends the curve.
	MinSizeForFork int `json:"min_size_for_fork" toml:"min_size_for_fork"`
	// CapacityDivisor scales the width component of control points.
	CapacityDivisor float64 `json:"capacity_divisor" toml:"capacity_divisor"`
	// Jitter is the maximum offset, in cells, added to control point
	// positions along each axis.
	Jitter float64 `json:"jitter" toml:"jitter"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{MinSizeForFork: 3, CapacityDivisor: 8, Jitter: 0.35}
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	if err := errors.ValidateNonNegative("min_size_for_fork", float64(p.MinSizeForFork)); err != nil {
		return err
	}
	if err := errors.ValidatePositive("capacity_divisor", p.CapacityDivisor); err != nil {
		return err
	}
	return errors.ValidateNonNegative("jitter", p.Jitter)
}

// Tree holds the curves built from one river tree.
type Tree struct {
	Splines []*Spline
}

// Trunk returns the curve that ends at the river mouth.
func (t *Tree) Trunk() *Spline { return t.Splines[0] }

// Build converts a river tree into curves. Elevations are read from elev at
// each node's cell. Trees with a single node cannot form a curve and return
// an INVALID_TREE error.
func Build(t *forest.Tree[field.Point], elev field.Field[float64], p Params, r *rng.RNG) (*Tree, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if t.Len() < 2 {
		return nil, errors.New(errors.ErrCodeInvalidTree, "river tree has %d node(s), need at least 2", t.Len())
	}
	b := &builder{
		t:      t,
		depths: t.Depths(),
		sizes:  t.Sizes(),
		min:    p.MinSizeForFork,
	}
	b.pts = make([]mgl64.Vec4, t.Len())
	for _, id := range t.PreOrder() {
		c := t.Value(id)
		z, err := field.Lookup(elev, c.X, c.Y)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "node %d", id)
		}
		b.pts[id] = mgl64.Vec4{
			float64(c.X) + r.Range(-p.Jitter, p.Jitter),
			float64(c.Y) + r.Range(-p.Jitter, p.Jitter),
			z,
			math.Log2(1+float64(b.sizes[id])) / p.CapacityDivisor,
		}
	}

	trunk := b.branch(t.Root())
	trunk = append(trunk, phantom(trunk[len(trunk)-1], trunk[len(trunk)-2]))

	out := &Tree{}
	for _, pts := range append([][]mgl64.Vec4{trunk}, b.sides...) {
		s, err := New(pts)
		if err != nil {
			return nil, err
		}
		out.Splines = append(out.Splines, s)
	}
	return out, nil
}

type builder struct {
	t      *forest.Tree[field.Point]
	pts    []mgl64.Vec4
	depths []int
	sizes  []int
	min    int
	sides  [][]mgl64.Vec4
}

// next returns the children the curve through id continues into. An empty
// result ends the curve at id.
func (b *builder) next(id forest.NodeID) []forest.NodeID {
	t := b.t
	switch t.ChildCount(id) {
	case 0:
		return nil
	case 1:
		return []forest.NodeID{t.FirstChild(id)}
	}
	root := id == t.Root()
	if !root && b.depths[id] <= b.min {
		return nil
	}
	var kids []forest.NodeID
	for c := t.FirstChild(id); c != forest.None; c = t.NextSibling(c) {
		if b.sizes[c] >= b.min {
			kids = append(kids, c)
		}
	}
	if len(kids) == 0 {
		kids = append(kids, t.DeepestChild(id, b.depths))
	}
	return kids
}

// branch returns the control points of the curve from the upstream end
// through id, id last.
func (b *builder) branch(id forest.NodeID) []mgl64.Vec4 {
	var chain []forest.NodeID
	var pts []mgl64.Vec4
	for pts == nil {
		kids := b.next(id)
		switch len(kids) {
		case 0:
			here := b.pts[id]
			pts = []mgl64.Vec4{phantom(here, b.pts[b.t.Parent(id)]), here}
		case 1:
			chain = append(chain, id)
			id = kids[0]
		default:
			pts = b.fork(id, kids)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		pts = append(pts, b.pts[chain[i]])
	}
	return pts
}

// fork builds every qualifying child of id. The shortest result continues
// through id; the others become side curves ending on id.
func (b *builder) fork(id forest.NodeID, kids []forest.NodeID) []mgl64.Vec4 {
	here := b.pts[id]
	lists := make([][]mgl64.Vec4, len(kids))
	trunk := 0
	for i, k := range kids {
		lists[i] = b.branch(k)
		if len(lists[i]) < len(lists[trunk]) {
			trunk = i
		}
	}
	for i, pts := range lists {
		if i == trunk {
			continue
		}
		side := append(pts, here, phantom(here, pts[len(pts)-1]))
		b.sides = append(b.sides, side)
	}
	return append(lists[trunk], here)
}
