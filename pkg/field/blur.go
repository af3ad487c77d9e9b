package field

import (
	"math"
	"sync"

	"golang.org/x/exp/constraints"
)

// DefaultBoxCount is the number of box passes Blur uses when asked for zero.
const DefaultBoxCount = 3

// blurred approximates a Gaussian blur of src. The result is computed on
// first read and kept; later writes to src are not observed.
type blurred[T constraints.Float] struct {
	src   Field[T]
	sizes []int
	once  sync.Once
	out   []float64
}

// Blur returns a view approximating a Gaussian blur of src with standard
// deviation radius, using boxes successive box blurs (DefaultBoxCount when
// boxes <= 0). Edges are clamped: cells past the border read as the nearest
// border cell, so a constant field blurs to the same constant.
func Blur[T constraints.Float](src Field[T], radius float64, boxes int) Field[T] {
	if boxes <= 0 {
		boxes = DefaultBoxCount
	}
	return &blurred[T]{src: src, sizes: BoxSizes(radius, boxes)}
}

// BoxSizes returns the window widths of n box blurs whose combined variance
// approximates a Gaussian with standard deviation sigma. Widths are odd; the
// first m are the narrow width wl and the rest wl+2.
func BoxSizes(sigma float64, n int) []int {
	sizes := make([]int, n)
	if sigma <= 0 {
		for i := range sizes {
			sizes[i] = 1
		}
		return sizes
	}
	nf := float64(n)
	wIdeal := math.Sqrt(12*sigma*sigma/nf + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	if wl < 1 {
		wl = 1
	}
	wu := wl + 2
	wlf := float64(wl)
	mIdeal := (12*sigma*sigma - nf*wlf*wlf - 4*nf*wlf - 3*nf) / (-4*wlf - 4)
	m := int(math.Round(mIdeal))
	m = max(0, min(n, m))
	for i := range sizes {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

func (b *blurred[T]) Width() int  { return b.src.Width() }
func (b *blurred[T]) Height() int { return b.src.Height() }

func (b *blurred[T]) At(x, y int) T {
	w, h := b.src.Width(), b.src.Height()
	checkBounds(x, y, w, h)
	b.once.Do(b.compute)
	return T(b.out[y*w+x])
}

func (b *blurred[T]) compute() {
	w, h := b.src.Width(), b.src.Height()
	cur := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cur[y*w+x] = float64(b.src.At(x, y))
		}
	}
	tmp := make([]float64, w*h)
	for _, size := range b.sizes {
		r := (size - 1) / 2
		if r == 0 {
			continue
		}
		boxHorizontal(cur, tmp, w, h, r)
		boxVertical(tmp, cur, w, h, r)
	}
	b.out = cur
}

// boxHorizontal writes the mean of each row window [x-r, x+r] of src into
// dst, clamping indices to the row.
func boxHorizontal(src, dst []float64, w, h, r int) {
	size := float64(2*r + 1)
	for y := 0; y < h; y++ {
		row := src[y*w : (y+1)*w]
		out := dst[y*w : (y+1)*w]
		var sum float64
		for k := -r; k <= r; k++ {
			sum += row[clampIndex(k, w)]
		}
		out[0] = sum / size
		for x := 1; x < w; x++ {
			sum += row[clampIndex(x+r, w)] - row[clampIndex(x-r-1, w)]
			out[x] = sum / size
		}
	}
}

// boxVertical is boxHorizontal along columns.
func boxVertical(src, dst []float64, w, h, r int) {
	size := float64(2*r + 1)
	for x := 0; x < w; x++ {
		var sum float64
		for k := -r; k <= r; k++ {
			sum += src[clampIndex(k, h)*w+x]
		}
		dst[x] = sum / size
		for y := 1; y < h; y++ {
			sum += src[clampIndex(y+r, h)*w+x] - src[clampIndex(y-r-1, h)*w+x]
			dst[y*w+x] = sum / size
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
