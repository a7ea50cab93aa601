// SPDX-License-Identifier: MIT

// Package signal provides the trace-preparation kernels used before
// wavefield continuation: linear detrending, cosine tapering, zero-phase
// spectral low-pass filtering, Lanczos and sinc (Whittaker–Shannon)
// resampling, and onset-relative window trimming.
//
// All functions operate on uniformly sampled []float64 series described by
// a start time (seconds relative to the arrival onset) and a sampling rate.
// Functions returning a slice allocate; functions named ...InPlace mutate.
package signal
