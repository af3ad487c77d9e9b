package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// Snapshot is the serialized form of a Result, used for cache entries and
// API responses. Grids are flattened row-major.
type Snapshot struct {
	Schema int `json:"schema"`
	Width  int `json:"width"`
	Height int `json:"height"`

	Availability []uint8 `json:"availability"`
	Types        []uint8 `json:"types"`
	// Drainage holds, per cell, the row-major index of its drainage target.
	Drainage  []int     `json:"drainage"`
	Elevation []float64 `json:"elevation"`
	Rivers    []River   `json:"rivers"`

	Stats Stats `json:"stats"`
}

// River is a serialized river tree. Nodes are listed in pre-order, each as
// [x, y, parent] where parent indexes an earlier node and the root has -1.
type River struct {
	Nodes [][3]int `json:"nodes"`
}

// NewSnapshot flattens a result.
func NewSnapshot(r *Result) Snapshot {
	w, h := r.Types.Width(), r.Types.Height()
	s := Snapshot{
		Schema:       schemaVersion,
		Width:        w,
		Height:       h,
		Availability: make([]uint8, 0, w*h),
		Types:        make([]uint8, 0, w*h),
		Drainage:     make([]int, 0, w*h),
		Elevation:    append([]float64(nil), r.Elevation.Data()...),
		Stats:        r.Stats,
	}
	for _, a := range r.Availability.Data() {
		s.Availability = append(s.Availability, uint8(a))
	}
	for _, t := range r.Types.Data() {
		s.Types = append(s.Types, uint8(t))
	}
	for _, p := range r.Drainage.Data() {
		s.Drainage = append(s.Drainage, p.Y*w+p.X)
	}
	for _, t := range r.Rivers {
		s.Rivers = append(s.Rivers, encodeRiver(t))
	}
	return s
}

func encodeRiver(t *forest.Tree[field.Point]) River {
	order := t.PreOrder()
	pos := make(map[forest.NodeID]int, len(order))
	nodes := make([][3]int, 0, len(order))
	for i, id := range order {
		pos[id] = i
		parent := -1
		if p := t.Parent(id); p != forest.None {
			parent = pos[p]
		}
		v := t.Value(id)
		nodes = append(nodes, [3]int{v.X, v.Y, parent})
	}
	return River{Nodes: nodes}
}

// Result rebuilds the grids and trees of a snapshot. It rejects snapshots
// of another schema or with inconsistent sizes.
func (s Snapshot) Result() (*Result, error) {
	if s.Schema != schemaVersion {
		return nil, errors.New(errors.ErrCodeInvalidInput, "snapshot schema %d, want %d", s.Schema, schemaVersion)
	}
	if err := errors.ValidateDimensions(s.Width, s.Height); err != nil {
		return nil, err
	}
	n := s.Width * s.Height
	if len(s.Availability) != n || len(s.Types) != n || len(s.Drainage) != n || len(s.Elevation) != n {
		return nil, errors.New(errors.ErrCodeDimensionMismatch, "snapshot layers do not match %dx%d", s.Width, s.Height)
	}

	avail := make([]terrain.Availability, n)
	types := make([]terrain.LandType, n)
	drain := make([]field.Point, n)
	for i := 0; i < n; i++ {
		avail[i] = terrain.Availability(s.Availability[i])
		types[i] = terrain.LandType(s.Types[i])
		d := s.Drainage[i]
		if d < 0 || d >= n {
			return nil, errors.New(errors.ErrCodeInvalidInput, "drainage target %d outside grid", d)
		}
		drain[i] = field.Pt(d%s.Width, d/s.Width)
	}

	r := &Result{Stats: s.Stats}
	var err error
	if r.Availability, err = field.GridFrom(s.Width, s.Height, avail); err != nil {
		return nil, err
	}
	if r.Types, err = field.GridFrom(s.Width, s.Height, types); err != nil {
		return nil, err
	}
	if r.Drainage, err = field.GridFrom(s.Width, s.Height, drain); err != nil {
		return nil, err
	}
	if r.Elevation, err = field.GridFrom(s.Width, s.Height, append([]float64(nil), s.Elevation...)); err != nil {
		return nil, err
	}
	for i, rv := range s.Rivers {
		t, err := rv.tree()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "river %d", i)
		}
		r.Rivers = append(r.Rivers, t)
	}
	return r, nil
}

func (rv River) tree() (*forest.Tree[field.Point], error) {
	if len(rv.Nodes) == 0 || rv.Nodes[0][2] != -1 {
		return nil, errors.New(errors.ErrCodeInvalidTree, "river has no root")
	}
	t := forest.New(field.Pt(rv.Nodes[0][0], rv.Nodes[0][1]))
	ids := []forest.NodeID{t.Root()}
	for i, n := range rv.Nodes[1:] {
		parent := n[2]
		if parent < 0 || parent > i {
			return nil, errors.New(errors.ErrCodeInvalidTree, "node %d has parent %d", i+1, parent)
		}
		ids = append(ids, t.AddChild(ids[parent], field.Pt(n[0], n[1])))
	}
	return t, nil
}

// MarshalResult encodes a result as JSON.
func MarshalResult(r *Result) ([]byte, error) {
	return json.Marshal(NewSnapshot(r))
}

// UnmarshalResult decodes a result encoded by MarshalResult.
func UnmarshalResult(data []byte) (*Result, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot")
	}
	return s.Result()
}
