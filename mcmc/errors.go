// SPDX-License-Identifier: MIT

package mcmc

import "errors"

var (
	// ErrBoundsViolation indicates unusable bounds, an initial point outside
	// the bounds, or an iteration budget that leaves no sampling phase
	// (maxIter ≤ burnIn). It is always returned before the chain starts.
	ErrBoundsViolation = errors.New("mcmc: bounds violation")

	// ErrNilObjective indicates a nil objective function.
	ErrNilObjective = errors.New("mcmc: objective is nil")
)
