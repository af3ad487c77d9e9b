package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/growth"
	"github.com/matzehuels/fluvia/pkg/height"
	"github.com/matzehuels/fluvia/pkg/observability"
	"github.com/matzehuels/fluvia/pkg/rng"
	"github.com/matzehuels/fluvia/pkg/spline"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// Stream labels of the per-stage random sources.
const (
	streamGrowth uint64 = iota + 1
	streamCarve
	streamSplines
)

// streams derives the per-stage generators of a seed. They are always
// derived in the same order so each stage sees the same sequence whether
// or not earlier stages ran in this process.
func streams(seed uint64) (grow, carve, splines *rng.RNG) {
	root := rng.New(seed)
	return root.Derive(streamGrowth), root.Derive(streamCarve), root.Derive(streamSplines)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses. A cached result
	// gets a fresh RunID.
	RunID uuid.UUID

	// Availability is the grid after growth.
	Availability *field.Grid[terrain.Availability]
	Types        *field.Grid[terrain.LandType]
	// Drainage maps every cell to the cell it drains into.
	Drainage  *field.Grid[field.Point]
	Elevation *field.Grid[float64]
	Rivers    []*forest.Tree[field.Point]

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the result was read from the cache.
	CacheHit bool

	opts Options
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Growth growth.Report `json:"growth"`

	Land  int `json:"land"`
	Shore int `json:"shore"`
	Ocean int `json:"ocean"`

	Landlocked int            `json:"landlocked"`
	Rivers     []forest.Stats `json:"rivers"`

	Elevation field.Summary `json:"elevation"`

	GrowthTime   time.Duration `json:"growth_ns"`
	ClassifyTime time.Duration `json:"classify_ns"`
	DrainageTime time.Duration `json:"drainage_ns"`
	HeightTime   time.Duration `json:"height_ns"`
}

// RiverNodes returns the total node count over all river trees.
func (s Stats) RiverNodes() int {
	n := 0
	for _, r := range s.Rivers {
		n += r.Nodes
	}
	return n
}

// Options returns the validated options the result was produced with.
func (r *Result) Options() Options { return r.opts }

// Waterways returns the river trees without branches shorter than the
// configured minimum waterway length.
func (r *Result) Waterways() []*forest.Tree[field.Point] {
	return height.Waterways(r.Rivers, r.opts.Elevation.MinWaterwayLength)
}

// Splines builds one spline tree per waterway. Single-cell waterways have
// no curve and are skipped. The result is deterministic for a given seed.
func (r *Result) Splines(ctx context.Context) ([]*spline.Tree, error) {
	_, _, src := streams(r.opts.Seed)
	var out []*spline.Tree
	err := observability.Stage(ctx, observability.StageSplines, func() error {
		for _, t := range r.Waterways() {
			if t.Len() < 2 {
				continue
			}
			st, err := spline.Build(t, r.Elevation, r.opts.Splines, src)
			if err != nil {
				return err
			}
			out = append(out, st)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
