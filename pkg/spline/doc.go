// Package spline turns river trees into smooth centripetal Catmull-Rom
// curves.
//
// # Control points
//
// Every tree node contributes one [mgl64.Vec4] control point: its jittered
// cell position (X, Y), its elevation (Z) and log2(1+upstream cells) scaled by
// CapacityDivisor (W), which renderers use as river width.
//
// # Branch decomposition
//
// [Build] walks the tree from the mouth. Single-child chains are followed
// directly. A leaf, or a fork whose depth is at most MinSizeForFork, ends a
// curve with a phantom point extrapolated past it. At a real fork every child
// with at least MinSizeForFork upstream cells is built on its own. The child
// yielding the fewest points continues the current curve; each other child
// becomes a separate curve that ends exactly on the fork point, followed by
// a phantom point. The trunk is [Tree.Trunk], the first curve.
//
// Chains are walked iteratively; only real forks recurse, so recursion depth
// is bounded by the fork nesting rather than the river length.
//
// # Parametrization
//
// Knot spacing is the square root of the planar distance between consecutive
// control points. [Spline.At] evaluates the Barry-Goldman pyramid on the
// interior knot range, normalized to [0, 1]: At(0) is the first true control
// point and At(1) the last.
package spline
