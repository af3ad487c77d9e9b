package field

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/matzehuels/fluvia/pkg/errors"
)

// subField is a rectangular window into another field.
type subField[T any] struct {
	src  Field[T]
	rect Rect
}

// Crop returns the window r of src. r must lie inside src.
func Crop[T any](src Field[T], r Rect) (Field[T], error) {
	if !r.Within(Bounds(src)) {
		return nil, errors.New(errors.ErrCodeOutOfBounds,
			"crop %dx%d at (%d,%d) exceeds %dx%d field", r.W, r.H, r.X, r.Y, src.Width(), src.Height())
	}
	return &subField[T]{src: src, rect: r}, nil
}

func (s *subField[T]) Width() int  { return s.rect.W }
func (s *subField[T]) Height() int { return s.rect.H }

func (s *subField[T]) At(x, y int) T {
	checkBounds(x, y, s.rect.W, s.rect.H)
	return s.src.At(s.rect.X+x, s.rect.Y+y)
}

// resampled is a bilinear rescale of src.
type resampled[T constraints.Float] struct {
	src   Field[T]
	scale float64
	w, h  int
}

// Resample returns src scaled by scale using bilinear interpolation. The
// result is max(1, floor(W*scale)) × max(1, floor(H*scale)).
func Resample[T constraints.Float](src Field[T], scale float64) (Field[T], error) {
	if err := errors.ValidatePositive("scale", scale); err != nil {
		return nil, err
	}
	if math.IsInf(scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "scale must be finite")
	}
	w := max(1, int(math.Floor(float64(src.Width())*scale)))
	h := max(1, int(math.Floor(float64(src.Height())*scale)))
	return &resampled[T]{src: src, scale: scale, w: w, h: h}, nil
}

func (r *resampled[T]) Width() int  { return r.w }
func (r *resampled[T]) Height() int { return r.h }

func (r *resampled[T]) At(x, y int) T {
	checkBounds(x, y, r.w, r.h)
	sw, sh := r.src.Width(), r.src.Height()
	sx := clampCoord(float64(x)/r.scale, sw)
	sy := clampCoord(float64(y)/r.scale, sh)

	x0, y0 := int(sx), int(sy)
	x1, y1 := min(x0+1, sw-1), min(y0+1, sh-1)
	fx, fy := T(sx-float64(x0)), T(sy-float64(y0))

	top := r.src.At(x0, y0)*(1-fx) + r.src.At(x1, y0)*fx
	bottom := r.src.At(x0, y1)*(1-fx) + r.src.At(x1, y1)*fx
	return top*(1-fy) + bottom*fy
}

func clampCoord(v float64, n int) float64 {
	if v < 0 {
		return 0
	}
	if hi := float64(n - 1); v > hi {
		return hi
	}
	return v
}
