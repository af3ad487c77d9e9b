package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/fluvia/pkg/cache"
	"github.com/matzehuels/fluvia/pkg/classify"
	"github.com/matzehuels/fluvia/pkg/drainage"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/growth"
	"github.com/matzehuels/fluvia/pkg/height"
	"github.com/matzehuels/fluvia/pkg/observability"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// Cache key types reported to observability hooks.
const (
	keyTypeTerrain = "terrain"
	keyTypeBase    = "base"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// NoiseInput synthesizes an input from simplex noise sized by opts. The
// materialized noise is cached under the base key.
func (r *Runner) NoiseInput(ctx context.Context, opts Options) (Input, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Input{}, fmt.Errorf("invalid options: %w", err)
	}
	key := r.Keyer.BaseKey(opts.Width, opts.Height, int64(opts.Seed))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var values []float64
			if json.Unmarshal(data, &values) == nil {
				if g, err := field.GridFrom(opts.Width, opts.Height, values); err == nil {
					observability.Cache().OnCacheHit(ctx, keyTypeBase)
					return InputFrom(g, opts.SeaLevel), nil
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeBase)
	}

	var base *field.Grid[float64]
	err := observability.Stage(ctx, observability.StageBase, func() error {
		base = field.Materialize(NoiseField(opts))
		return nil
	})
	if err != nil {
		return Input{}, err
	}
	if data, err := json.Marshal(base.Data()); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLTerrain); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeBase, len(data))
		}
	}
	return InputFrom(base, opts.SeaLevel), nil
}

// Execute runs the complete growth → classify → drainage → height pipeline
// with caching. The context is checked between stages. A custom
// Elevation.Carve cannot be hashed, so such runs bypass the cache.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	runID := uuid.New()
	w, h := in.Sketch.Width(), in.Sketch.Height()
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, runID.String(), w, h)
	start := time.Now()
	defer func() { hooks.OnRunComplete(ctx, runID.String(), time.Since(start), err) }()

	logger := opts.Logger.With("run", runID.String()[:8])

	avail, err := terrain.FromSketch(in.Sketch, in.Water, in.Illegal)
	if err != nil {
		return nil, fmt.Errorf("sketch: %w", err)
	}
	base := field.Materialize(in.Base)

	cacheable := opts.Elevation.Carve == nil
	keyOpts, err := opts.KeyOpts()
	if err != nil {
		return nil, err
	}
	key := r.Keyer.TerrainKey(inputHash(base, avail), keyOpts)
	if cacheable && !opts.Refresh {
		if cached := r.lookup(ctx, key); cached != nil {
			cached.RunID = runID
			cached.opts = opts
			logger.Info("loaded terrain from cache", "rivers", len(cached.Rivers))
			return cached, nil
		}
	}

	res, err = r.run(ctx, logger, avail, base, opts)
	if err != nil {
		return nil, err
	}
	res.RunID = runID
	if !cacheable {
		return res, nil
	}

	if data, err := MarshalResult(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLTerrain); err != nil {
			logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeTerrain, len(data))
		}
	}
	return res, nil
}

// run executes the stages on an availability grid it owns.
func (r *Runner) run(ctx context.Context, logger *log.Logger, avail *field.Grid[terrain.Availability], base *field.Grid[float64], opts Options) (*Result, error) {
	growRNG, carveRNG, _ := streams(opts.Seed)
	res := &Result{opts: opts, Availability: avail}
	res.Stats.Width, res.Stats.Height = avail.Width(), avail.Height()

	// Stage 1: Growth
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart := time.Now()
	err := observability.Stage(ctx, observability.StageGrowth, func() error {
		rep, err := growth.Grow(avail, opts.Growth, growRNG)
		res.Stats.Growth = rep
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("growth: %w", err)
	}
	res.Stats.GrowthTime = time.Since(stageStart)
	for _, p := range res.Stats.Growth.Passes {
		logger.Debug("growth pass", "step", p.Step, "candidates", p.Candidates, "impacts", p.Impacts, "ratio", p.Ratio)
	}
	logger.Info("grew rivers",
		"passes", len(res.Stats.Growth.Passes),
		"impacts", res.Stats.Growth.Impacts(),
		"duration", res.Stats.GrowthTime)

	// Stage 2: Classify
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	var cls classify.Result
	err = observability.Stage(ctx, observability.StageClassify, func() error {
		var err error
		cls, err = classify.Classify(avail, opts.Classify)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	res.Types, res.Rivers = cls.Types, cls.Rivers
	res.Stats.ClassifyTime = time.Since(stageStart)
	res.Stats.Landlocked = cls.Landlocked
	res.Stats.Land = field.Count[terrain.LandType](cls.Types, func(t terrain.LandType) bool { return t == terrain.Land })
	res.Stats.Shore = field.Count[terrain.LandType](cls.Types, func(t terrain.LandType) bool { return t == terrain.Shore })
	res.Stats.Ocean = field.Count[terrain.LandType](cls.Types, func(t terrain.LandType) bool { return t == terrain.Ocean })
	for _, t := range cls.Rivers {
		res.Stats.Rivers = append(res.Stats.Rivers, t.Stats())
	}
	logger.Info("classified terrain",
		"rivers", len(cls.Rivers),
		"landlocked", cls.Landlocked,
		"duration", res.Stats.ClassifyTime)

	// Stage 3: Drainage
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	err = observability.Stage(ctx, observability.StageDrainage, func() error {
		var err error
		res.Drainage, err = drainage.Resolve(res.Types, res.Rivers)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("drainage: %w", err)
	}
	res.Stats.DrainageTime = time.Since(stageStart)
	logger.Info("resolved drainage", "duration", res.Stats.DrainageTime)

	// Stage 4: Height
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	hp := opts.Elevation
	if hp.Carve == nil && opts.CarveMax > 0 {
		hp.Carve = height.UniformCarve(carveRNG, opts.CarveMax)
	}
	err = observability.Stage(ctx, observability.StageHeight, func() error {
		var err error
		res.Elevation, err = height.Synthesize(height.Input{
			Types:    res.Types,
			Drainage: res.Drainage,
			Rivers:   res.Rivers,
			Base:     base,
		}, hp)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	res.Stats.HeightTime = time.Since(stageStart)
	res.Stats.Elevation = field.Summarize(res.Elevation)
	logger.Info("synthesized elevation",
		"min", res.Stats.Elevation.Min,
		"max", res.Stats.Elevation.Max,
		"duration", res.Stats.HeightTime)

	return res, nil
}

// lookup returns a decoded cache entry or nil on a miss.
func (r *Runner) lookup(ctx context.Context, key string) *Result {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeTerrain)
		return nil
	}
	res, err := UnmarshalResult(data)
	if err != nil {
		// Stale or corrupt entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, keyTypeTerrain)
		return nil
	}
	observability.Cache().OnCacheHit(ctx, keyTypeTerrain)
	res.CacheHit = true
	return res
}

// inputHash identifies a run's inputs. The availability grid stands in for
// the sketch and its predicates.
func inputHash(base *field.Grid[float64], avail *field.Grid[terrain.Availability]) string {
	flags := make([]float64, 0, len(avail.Data()))
	for _, a := range avail.Data() {
		flags = append(flags, float64(a))
	}
	w, h := base.Width(), base.Height()
	return cache.Hash([]byte(cache.HashFloats(w, h, base.Data()) + cache.HashFloats(w, h, flags)))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
