// Package pkg provides the core libraries for fluvia terrain synthesis.
//
// # Overview
//
// fluvia turns a coarse coastline sketch into a heightfield carved by a
// branching river network. Every cell of the result drains monotonically
// to the sea. The pkg directory is organized into three areas:
//
//  1. Grids and trees: [field], [forest], [terrain], [rng]
//  2. Hydrology stages: [growth], [classify], [drainage], [height], [spline]
//  3. Orchestration: [pipeline], [cache], [observability], [errors]
//
// # Architecture
//
// The data flow of one run:
//
//	sketch + base elevation
//	         ↓
//	    [terrain] package (availability grid)
//	         ↓
//	    [growth] package (carve river cells into land)
//	         ↓
//	    [classify] package (land types + river trees)
//	         ↓
//	    [drainage] package (drainage target per cell)
//	         ↓
//	    [height] package (elevation field)
//	         ↓
//	    [spline] package (smooth river curves)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	opts := pipeline.DefaultOptions()
//	opts.Width, opts.Height = 128, 128
//
//	in, _ := runner.NoiseInput(ctx, opts)
//	res, _ := runner.Execute(ctx, in, opts)
//	fmt.Println(res.Stats.Land, len(res.Rivers))
//
// Use a custom sketch:
//
//	in := pipeline.Input{
//	    Base:   base,
//	    Sketch: sketch,
//	    Water:  terrain.BelowLevel(0.5),
//	}
//	res, _ := runner.Execute(ctx, in, opts)
//
// # Determinism
//
// All randomness flows from [rng.RNG]. The pipeline derives one stream per
// stage from Options.Seed, so equal seeds and parameters give equal results.
//
// [field]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/field
// [forest]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/forest
// [terrain]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/terrain
// [rng]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/rng
// [rng.RNG]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/rng#RNG
// [growth]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/growth
// [classify]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/classify
// [drainage]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/drainage
// [height]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/height
// [spline]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/spline
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/fluvia/pkg/errors
package pkg
