package field

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// SimplexOptions configures Simplex.
type SimplexOptions struct {
	Frequency   float64 // base frequency in cycles per cell
	Octaves     int     // number of summed octaves
	Persistence float64 // amplitude multiplier per octave
}

// DefaultSimplexOptions returns settings suited to a continent-scale base
// elevation on a few hundred cells.
func DefaultSimplexOptions() SimplexOptions {
	return SimplexOptions{Frequency: 1.0 / 64, Octaves: 4, Persistence: 0.5}
}

// Simplex returns a w×h view of octave OpenSimplex noise in [0, 1].
// Noise is an input collaborator of the pipeline; fluvia only wraps it as a
// Field so a base elevation can be synthesized without an image decoder.
func Simplex(w, h int, seed int64, opts SimplexOptions) Field[float64] {
	if opts.Octaves <= 0 {
		opts.Octaves = 1
	}
	if opts.Frequency <= 0 {
		opts.Frequency = DefaultSimplexOptions().Frequency
	}
	if opts.Persistence <= 0 {
		opts.Persistence = DefaultSimplexOptions().Persistence
	}
	noise := opensimplex.NewNormalized(seed)
	return FromFunc(w, h, func(x, y int) float64 {
		return octaves(noise, float64(x), float64(y), opts)
	})
}

func octaves(noise opensimplex.Noise, x, y float64, opts SimplexOptions) float64 {
	total, norm := 0.0, 0.0
	amplitude, frequency := 1.0, opts.Frequency
	for i := 0; i < opts.Octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= opts.Persistence
		frequency *= 2
	}
	return total / norm
}
