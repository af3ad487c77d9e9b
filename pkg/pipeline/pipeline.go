// Package pipeline chains the fluvia stages into one deterministic run.
//
// This package implements the complete growth → classify → drainage →
// height pipeline used by the CLI and the HTTP API. Centralizing it keeps
// seeding, validation and caching identical across entry points.
//
// # Architecture
//
// A run consists of four stages executed strictly in sequence:
//
//  1. Growth: carve rivers into the availability grid derived from the sketch
//  2. Classify: assign land types and extract river trees
//  3. Drainage: resolve the downhill neighbour of every cell
//  4. Height: raise the base field into a monotone elevation
//
// River splines are derived on demand from a finished [Result].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 7
//	in, err := runner.NoiseInput(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, in, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	splines, err := result.Splines(ctx)
//
// # Determinism
//
// Every stage draws from its own stream derived from Options.Seed, so a run
// with the same input and options is bit-identical.
package pipeline

import (
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/fluvia/pkg/cache"
	"github.com/matzehuels/fluvia/pkg/classify"
	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/growth"
	"github.com/matzehuels/fluvia/pkg/height"
	"github.com/matzehuels/fluvia/pkg/spline"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultWidth is the default width in cells of a synthesized input.
	DefaultWidth = 256

	// DefaultHeight is the default height in cells of a synthesized input.
	DefaultHeight = 256

	// DefaultSeaLevel splits a synthesized sketch into water and land.
	DefaultSeaLevel = 0.4

	// DefaultCarveMax bounds the random extra rise per river node.
	DefaultCarveMax = 0.01

	// MaxCells caps width*height of a single run.
	MaxCells = 4096 * 4096
)

// schemaVersion changes whenever the cached snapshot layout changes.
const schemaVersion = 1

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a generation run.
// It supports JSON for API requests and TOML for parameter files.
type Options struct {
	Seed uint64 `json:"seed,omitempty" toml:"seed"`

	// Width and Height size a synthesized input; see Runner.NoiseInput.
	Width  int `json:"width,omitempty" toml:"width"`
	Height int `json:"height,omitempty" toml:"height"`
	// SeaLevel is the sketch value below which a synthesized input is water.
	SeaLevel float64 `json:"sea_level,omitempty" toml:"sea_level"`

	// CarveMax is the upper bound of the random rise added per river node.
	CarveMax float64 `json:"carve_max,omitempty" toml:"carve_max"`

	Growth    growth.Params   `json:"growth" toml:"growth"`
	Classify  classify.Params `json:"classify" toml:"classify"`
	Elevation height.Params   `json:"elevation" toml:"elevation"`
	Splines   spline.Params   `json:"splines" toml:"splines"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-" toml:"-"`
	Logger  *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	return Options{
		Seed:      DefaultSeed,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		SeaLevel:  DefaultSeaLevel,
		CarveMax:  DefaultCarveMax,
		Growth:    growth.DefaultParams(),
		Classify:  classify.DefaultParams(),
		Elevation: height.DefaultParams(),
		Splines:   spline.DefaultParams(),
	}
}

// LoadOptions decodes a TOML parameter file on top of DefaultOptions, so
// keys missing from the file keep their defaults.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.NewDecoder(r).Decode(&opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode options")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "unknown option %q", undecoded[0].String())
	}
	return opts, nil
}

// LoadOptionsFile reads a TOML parameter file from disk.
func LoadOptionsFile(path string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "%s: unknown option %q", path, undecoded[0].String())
	}
	return opts, nil
}

// ValidateAndSetDefaults applies defaults to zero-valued settings and checks
// every parameter group. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued top-level settings and replaces entirely
// zero parameter groups with their defaults.
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.SeaLevel == 0 {
		o.SeaLevel = DefaultSeaLevel
	}
	if o.Growth == (growth.Params{}) {
		o.Growth = growth.DefaultParams()
	}
	if o.Classify == (classify.Params{}) {
		o.Classify = classify.DefaultParams()
	}
	if zeroElevation(o.Elevation) {
		carve := o.Elevation.Carve
		o.Elevation = height.DefaultParams()
		o.Elevation.Carve = carve
	}
	if o.Splines == (spline.Params{}) {
		o.Splines = spline.DefaultParams()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func zeroElevation(p height.Params) bool {
	return p.Epsilon == 0 && p.SmoothingPasses == 0 && p.SmoothingRadius == 0 &&
		p.MinWaterwayLength == 0 && p.Grade == 0
}

// Validate checks every setting without applying defaults.
func (o *Options) Validate() error {
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Width*o.Height > MaxCells {
		return errors.New(errors.ErrCodeInvalidOptions, "grid %dx%d exceeds %d cells", o.Width, o.Height, MaxCells)
	}
	checks := []error{
		errors.ValidateFraction("sea_level", o.SeaLevel),
		errors.ValidateNonNegative("carve_max", o.CarveMax),
		o.Growth.Validate(),
		validateClassify(o.Classify),
		o.Elevation.Validate(),
		o.Splines.Validate(),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func validateClassify(p classify.Params) error {
	if err := errors.ValidateNonNegative("sensitivity", float64(p.Sensitivity)); err != nil {
		return err
	}
	return errors.ValidateFraction("shore_threshold", p.ShoreThreshold)
}

// ParamsHash returns a stable hash of every serialized setting. Runtime
// settings (logger, refresh, carve override) are excluded. Settings that
// cannot be serialized, such as infinities, are an INVALID_OPTIONS error.
func (o *Options) ParamsHash() (string, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidOptions, err, "hash options")
	}
	return cache.Hash(data), nil
}

// KeyOpts returns cache key options for a run with these options.
func (o *Options) KeyOpts() (cache.TerrainKeyOpts, error) {
	hash, err := o.ParamsHash()
	if err != nil {
		return cache.TerrainKeyOpts{}, err
	}
	return cache.TerrainKeyOpts{
		Seed:       o.Seed,
		ParamsHash: hash,
		Schema:     schemaVersion,
	}, nil
}
