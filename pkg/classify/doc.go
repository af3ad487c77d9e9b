// Package classify derives land types and river trees from a grown
// availability grid.
//
// The classifier runs in three steps, each usable on its own:
//
//   - [Group] floods a field into 8-connected regions of equal value.
//   - [LandTypes] labels every cell Land, Shore or Ocean. Available cells are
//     Land; every other cell takes a majority vote over the disc of radius
//     Sensitivity around it and becomes Shore when the Land fraction exceeds
//     ShoreThreshold, Ocean otherwise. Cells outside the grid do not vote.
//   - [Rivers] turns every Shore region that touches the Ocean into a BFS
//     spanning tree rooted at its mouth.
//
// [Classify] runs all three.
//
// # Mouth selection
//
// A Shore region can touch the Ocean in many places. The mouth is the last
// ocean-adjacent cell in the region's flood order. The choice depends only on
// the grid, so it is stable across runs, but it is not the "best" mouth in
// any hydrological sense.
package classify
