// Package growth carves a branching river skeleton into an availability grid.
//
// # Algorithm
//
// [Grow] runs passes over a shrinking step size that starts at
// min(width, height). A pass places one jittered candidate in every
// step×step cell of the grid and visits the candidates in random order.
// Candidates already within the pass sensitivity (equal to the step) of water
// are skipped. Every other candidate performs a correlated random walk: the
// heading drifts by a normally distributed turn each move and each move
// covers between one and MaxMoveSize cells. The walk ends in one of two ways:
//
//   - Impact: the walker comes within sensitivity of an Unavailable cell.
//     A line sampled at half-cell spacing is drawn from the walker to a
//     randomly chosen Unavailable cell in range, joining the new branch to
//     the network.
//   - Abandon: the walker leaves the grid, lands on water, touches an
//     Illegal cell, or exceeds MaxSegmentLength moves. The grid is not
//     modified.
//
// After a pass the impact ratio impacts/candidates decides progression: the
// step halves once the ratio drops below ImpactThreshold (or after
// MaxPassesPerStep passes at one step), so coarse trunks stabilize before
// finer passes add secondary branches. Growth stops once the step is no
// longer above MinSensitivity.
//
// # Determinism
//
// All randomness comes from the caller's *rng.RNG. The same seed and grid
// always produce the same result.
//
// # Concurrency
//
// Growth mutates the grid in place and needs exclusive access to it. No view
// over the grid may be read while a pass is running.
package growth
