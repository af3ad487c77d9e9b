// Package field provides lazy, composable, read-only 2D grids.
//
// # Overview
//
// A [Field] is anything with a fixed width and height that can be read at an
// integer coordinate in O(1). Fields are the currency of the whole terrain
// pipeline: the availability grid, the land-type classification, the drainage
// map and the elevation map are all fields, and so are the inputs (a base
// elevation and a coastline sketch).
//
// Coordinates are (x, y) with x the column and y the row. Reading outside
// [0, Width) × [0, Height) is a contract violation and panics with an
// OUT_OF_BOUNDS error from the errors package, in the same way indexing a
// slice out of range panics. Use [Lookup] when a coordinate may be invalid.
//
// # Views
//
// Views wrap other fields and compute values on read, so chains of views do
// not allocate intermediate grids:
//
//   - [Map], [MapAt]: elementwise or position-aware transformation
//   - [Sum]: elementwise sum across same-shaped operands
//   - [Normalize]: a sum divided by its own maximum (fixed at construction)
//   - [Blur]: approximate Gaussian blur via repeated box blurs
//   - [Crop]: a rectangular window into another field
//   - [Resample]: bilinear rescale
//
// [Blur] is the one view that buffers: it computes its result once, on first
// read, because a separable sliding-window blur cannot be evaluated per cell
// in O(1).
//
// # Mutability
//
// [Grid] is the only mutable field. Views hold read references to their
// sources; reading a view while the grid underneath it is being written gives
// undefined results. [Normalize] and [Blur] snapshot their source when they
// first scan it and will not observe later writes.
//
// # Point sets
//
// [Point] is an integer coordinate with value equality. [PointSet] is a sparse
// set of points grouped by row, used by the flood-fill classifier to track
// which cells still await a region.
package field
