package field_test

import (
	"fmt"

	"github.com/matzehuels/fluvia/pkg/field"
)

func ExampleSum() {
	a := field.Constant(3, 2, 1)
	b := field.FromFunc(3, 2, func(x, y int) int { return x + y })

	sum, err := field.Sum(a, b)
	if err != nil {
		panic(err)
	}
	fmt.Println(sum.At(0, 0), sum.At(2, 1))
	// Output: 1 4
}

func ExampleNormalize() {
	ramp := field.FromFunc(5, 1, func(x, _ int) float64 { return float64(x) })

	n, err := field.Normalize(ramp)
	if err != nil {
		panic(err)
	}
	fmt.Println(n.At(0, 0), n.At(2, 0), n.At(4, 0))
	// Output: 0 0.5 1
}

func ExampleCrop() {
	f := field.FromFunc(4, 4, func(x, y int) int { return y*4 + x })

	sub, err := field.Crop(f, field.Rect{X: 1, Y: 2, W: 2, H: 2})
	if err != nil {
		panic(err)
	}
	fmt.Println(sub.Width(), sub.Height(), sub.At(0, 0), sub.At(1, 1))
	// Output: 2 2 9 14
}
