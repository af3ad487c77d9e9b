package field

import (
	"math"
	"reflect"
	"testing"
)

func TestBoxSizes(t *testing.T) {
	tests := []struct {
		name  string
		sigma float64
		n     int
		want  []int
	}{
		{"sigma 2 three boxes", 2, 3, []int{3, 3, 5}},
		{"zero sigma is identity", 0, 3, []int{1, 1, 1}},
		{"sigma 1 three boxes", 1, 3, []int{1, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoxSizes(tt.sigma, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BoxSizes(%v, %d) = %v, want %v", tt.sigma, tt.n, got, tt.want)
			}
		})
	}
}

func TestBlurPreservesConstant(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 2, 5, 40} {
		b := Blur(Constant(17, 9, 3.25), radius, 3)
		for y := 0; y < b.Height(); y++ {
			for x := 0; x < b.Width(); x++ {
				if v := b.At(x, y); v < 3.25-1e-9 || v > 3.25+1e-9 {
					t.Fatalf("radius %v: At(%d,%d) = %v, want 3.25", radius, x, y, v)
				}
			}
		}
	}
}

func TestBlurConservesMassAwayFromEdges(t *testing.T) {
	g, _ := NewGrid[float64](21, 21)
	g.Set(10, 10, 1)

	b := Blur[float64](g, 2, 0)
	total := 0.0
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			total += b.At(x, y)
		}
	}
	if total < 1-1e-9 || total > 1+1e-9 {
		t.Errorf("blurred impulse sums to %v, want 1", total)
	}
	if b.At(10, 10) >= 1 || b.At(10, 10) <= b.At(12, 10) {
		t.Errorf("impulse should spread with a peak at its origin: center=%v side=%v", b.At(10, 10), b.At(12, 10))
	}
	if math.Abs(b.At(9, 10)-b.At(11, 10)) > 1e-12 || math.Abs(b.At(10, 9)-b.At(10, 11)) > 1e-12 {
		t.Error("blur of a centered impulse should be symmetric")
	}
}

func TestBlurSnapshotsOnFirstRead(t *testing.T) {
	g := ramp(4, 4)
	b := Blur[float64](g, 1, 3)
	before := b.At(0, 0)
	g.Set(0, 0, 1000)
	if after := b.At(0, 0); after != before {
		t.Errorf("blur changed after first read: %v -> %v", before, after)
	}
}

func TestBlurSingleRow(t *testing.T) {
	g, _ := GridFrom(5, 1, []float64{0, 0, 5, 0, 0})
	b := Blur[float64](g, 1, 1)
	if b.Width() != 5 || b.Height() != 1 {
		t.Fatalf("shape = %dx%d, want 5x1", b.Width(), b.Height())
	}
	if b.At(2, 0) >= 5 {
		t.Errorf("peak should be reduced, got %v", b.At(2, 0))
	}
}
