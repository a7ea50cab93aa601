// SPDX-License-Identifier: MIT

package orientation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/seisinv/signal"
)

// Prepare turns a raw arrival into a cut one: each component is linearly
// detrended, tapered, resampled to the analysis rate and cut to the arrival
// window around the onset. The result has Fs and Onset zero.
//
// An arrival whose Fs is already zero is returned unchanged.
//
// Errors: ErrLengthMismatch for components of different length; ErrWindow
// for a bad onset or a window outside the resampled trace.
func Prepare(a Arrival, opts ...Option) (Arrival, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return prepare(a, o)
}

func prepare(a Arrival, o Options) (Arrival, error) {
	if a.Fs == 0 {
		return a, nil
	}
	if len(a.Radial) != len(a.Transverse) {
		return a, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a.Radial), len(a.Transverse))
	}
	if math.IsNaN(a.Onset) || math.IsInf(a.Onset, 0) || a.Onset < 0 {
		return a, fmt.Errorf("%w: onset %g s", ErrWindow, a.Onset)
	}
	onset := int(math.Round(a.Onset * o.Rate))

	var cut [2][]float64
	for c, tr := range [2][]float64{a.Radial, a.Transverse} {
		x := append([]float64(nil), tr...)
		signal.DetrendInPlace(x)
		signal.TaperInPlace(x, o.TaperFraction)
		rs, err := signal.Resample(x, a.Fs, o.Rate)
		if err != nil {
			return a, fmt.Errorf("%w: %v", ErrWindow, err)
		}
		w, err := Window(rs, o.Rate, onset, o.Before, o.After)
		if err != nil {
			return a, err
		}
		cut[c] = w
	}
	a.Radial, a.Transverse = cut[0], cut[1]
	a.Fs, a.Onset = 0, 0
	return a, nil
}
