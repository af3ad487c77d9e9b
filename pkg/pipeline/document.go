package pipeline

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSamplesPerSegment is the curve density of a Document's splines.
const DefaultSamplesPerSegment = 4

// Document is the JSON output of a run shared by the CLI and the API.
type Document struct {
	RunID    string   `json:"run_id"`
	CacheHit bool     `json:"cache_hit"`
	Options  Options  `json:"options"`
	Terrain  Snapshot `json:"terrain"`
	// Splines holds one entry per waterway; each entry lists its curves,
	// trunk first, as sampled (x, y, elevation, width) points.
	Splines [][][][4]float64 `json:"splines,omitempty"`
}

// NewDocument builds the output document of a result. Splines are sampled
// with samplesPerSegment points per curve segment; zero or less omits them.
func NewDocument(ctx context.Context, r *Result, samplesPerSegment int) (Document, error) {
	doc := Document{
		RunID:    r.RunID.String(),
		CacheHit: r.CacheHit,
		Options:  r.Options(),
		Terrain:  NewSnapshot(r),
	}
	if samplesPerSegment <= 0 {
		return doc, nil
	}
	trees, err := r.Splines(ctx)
	if err != nil {
		return Document{}, err
	}
	for _, t := range trees {
		var curves [][][4]float64
		for _, s := range t.Splines {
			curves = append(curves, toArrays(s.SampleDensity(samplesPerSegment)))
		}
		doc.Splines = append(doc.Splines, curves)
	}
	return doc, nil
}

func toArrays(pts []mgl64.Vec4) [][4]float64 {
	out := make([][4]float64, len(pts))
	for i, p := range pts {
		out[i] = [4]float64(p)
	}
	return out
}
