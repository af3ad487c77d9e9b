package field

import "gonum.org/v1/gonum/floats"

// Summary holds basic statistics of a float field.
type Summary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Summarize computes min, max and mean over every cell of f.
// An empty field yields the zero Summary.
func Summarize(f Field[float64]) Summary {
	var data []float64
	if g, ok := f.(*Grid[float64]); ok {
		data = g.Data()
	} else {
		data = Materialize(f).Data()
	}
	if len(data) == 0 {
		return Summary{}
	}
	return Summary{
		Min:  floats.Min(data),
		Max:  floats.Max(data),
		Mean: floats.Sum(data) / float64(len(data)),
	}
}

// Count returns how many cells of f satisfy pred.
func Count[T any](f Field[T], pred func(T) bool) int {
	n := 0
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			if pred(f.At(x, y)) {
				n++
			}
		}
	}
	return n
}
