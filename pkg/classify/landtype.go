package classify

import (
	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// disc returns the offsets within Euclidean distance r of the origin,
// origin included.
func disc(r int) []field.Point {
	var out []field.Point
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				out = append(out, field.Pt(dx, dy))
			}
		}
	}
	return out
}

// LandTypes labels every cell of avail. See the package documentation for
// the voting rule.
func LandTypes(avail field.Field[terrain.Availability], sensitivity int, shoreThreshold float64) (*field.Grid[terrain.LandType], error) {
	if err := errors.ValidateNonNegative("sensitivity", float64(sensitivity)); err != nil {
		return nil, err
	}
	if err := errors.ValidateFraction("shore_threshold", shoreThreshold); err != nil {
		return nil, err
	}
	out, err := field.NewGrid[terrain.LandType](avail.Width(), avail.Height())
	if err != nil {
		return nil, err
	}
	window := disc(sensitivity)
	for y := 0; y < avail.Height(); y++ {
		for x := 0; x < avail.Width(); x++ {
			if avail.At(x, y) == terrain.Available {
				continue // Land is the zero value
			}
			if landFraction(avail, x, y, window) > shoreThreshold {
				out.Set(x, y, terrain.Shore)
			} else {
				out.Set(x, y, terrain.Ocean)
			}
		}
	}
	return out, nil
}

func landFraction(avail field.Field[terrain.Availability], x, y int, window []field.Point) float64 {
	land, total := 0, 0
	for _, d := range window {
		qx, qy := x+d.X, y+d.Y
		if !field.InBounds(avail, qx, qy) {
			continue
		}
		total++
		if avail.At(qx, qy) == terrain.Available {
			land++
		}
	}
	return float64(land) / float64(total)
}
