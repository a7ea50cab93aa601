// SPDX-License-Identifier: MIT

package wavefield

import "errors"

var (
	// ErrInvalidModel indicates a non-physical model: NaN or zero vertical
	// slowness for some layer and ray parameter, invalid layer properties, or
	// an evanescent S wave in the mantle. Never downgraded to a warning.
	ErrInvalidModel = errors.New("wavefield: invalid earth model")

	// ErrShapeMismatch indicates inconsistent trace lengths or sampling
	// across the batch, or between the components of one event.
	ErrShapeMismatch = errors.New("wavefield: waveform shape mismatch")

	// ErrNonFinite indicates NaN or ±Inf samples in an input trace. It is
	// always reported together with ErrShapeMismatch.
	ErrNonFinite = errors.New("wavefield: non-finite sample")

	// ErrDegenerateTrace indicates a vertical trace with zero peak amplitude,
	// which cannot be normalized.
	ErrDegenerateTrace = errors.New("wavefield: zero-amplitude vertical trace")

	// ErrNotIngested is returned by Evaluate before any data was ingested.
	ErrNotIngested = errors.New("wavefield: no data ingested")

	// ErrBadWindow indicates an invalid time, cut or flux window.
	ErrBadWindow = errors.New("wavefield: invalid window")
)
