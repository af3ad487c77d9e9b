// Package height assigns elevations consistent with drainage and a base
// field.
//
// [Synthesize] runs four steps:
//
//  1. Ocean cells are set to 0.
//  2. Every river tree is raised from its mouth (0) toward its sources. A
//     branch leaving a fork at elevation e climbs linearly to
//     max(e, base(source)) at its deepest leaf, in equal per-level steps of
//     at least Grade, plus a non-negative carve increment per node. The
//     deepest path through a node continues its branch; every other child
//     starts a new branch relative to that node.
//  3. Land draining to a Shore cell sits Epsilon above that cell. Other
//     Land sits Epsilon above the base field.
//  4. SmoothingPasses passes blur the whole field and copy the result onto
//     Land cells only. Water keeps its exact hydrological value.
//
// The result is checked before it is returned: on every river edge the
// child is at least as high as its parent. A violation is reported as an
// INVARIANT_VIOLATION error.
//
// [Waterways] derives the river trees worth rendering by dropping branches
// shorter than MinWaterwayLength.
package height
