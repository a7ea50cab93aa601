// SPDX-License-Identifier: MIT

// Package sweep provides the only fan-out primitive of the module: a
// bounded worker pool whose results are re-associated with their input
// index, and deterministic evaluation of scalar functions over Cartesian
// parameter grids (for example crustal thickness × shear velocity).
//
// Work items must be independent pure calls; shared inputs are read-only.
// Cancellation is cooperative: once ctx is done no new item is started and
// unstarted items report ctx.Err().
package sweep
