// SPDX-License-Identifier: MIT

package signal

import "errors"

var (
	// ErrEmptyTrace indicates a zero-length series where samples are required.
	ErrEmptyTrace = errors.New("signal: empty trace")

	// ErrBadRate indicates a non-positive or non-finite sampling rate.
	ErrBadRate = errors.New("signal: sampling rate must be positive and finite")

	// ErrBadWindow indicates an inverted or non-finite time window.
	ErrBadWindow = errors.New("signal: invalid time window")

	// ErrWindowNotCovered indicates that a trace does not span the requested window.
	ErrWindowNotCovered = errors.New("signal: trace does not cover window")
)
