// SPDX-License-Identifier: MIT

package signal

import (
	"fmt"
	"math"
)

// Window is a closed time interval [Start, End] in seconds relative to onset.
type Window struct {
	Start float64
	End   float64
}

// Validate checks that the window is finite and not inverted.
func (w Window) Validate() error {
	if math.IsNaN(w.Start) || math.IsNaN(w.End) || math.IsInf(w.Start, 0) || math.IsInf(w.End, 0) || w.End <= w.Start {
		return fmt.Errorf("%w: [%g, %g]", ErrBadWindow, w.Start, w.End)
	}
	return nil
}

// Contains reports whether t lies inside the closed window.
func (w Window) Contains(t float64) bool { return t >= w.Start && t <= w.End }

// Duration returns End-Start.
func (w Window) Duration() float64 { return w.End - w.Start }

// Times returns n sample times starting at start with spacing 1/fs.
func Times(n int, start, fs float64) []float64 {
	t := make([]float64, n)
	dt := 1 / fs
	for i := range t {
		t[i] = start + float64(i)*dt
	}
	return t
}

// TrimIndex returns the half-open index range [i0, i1) of the samples of a
// series (start, fs, n samples) that fall on the window w, snapping the
// window edges to the nearest sample.
//
// Returns ErrWindowNotCovered when the snapped window is not fully inside
// the series.
func TrimIndex(n int, start, fs float64, w Window) (int, int, error) {
	if n == 0 {
		return 0, 0, ErrEmptyTrace
	}
	if !(fs > 0) || math.IsInf(fs, 0) {
		return 0, 0, ErrBadRate
	}
	if err := w.Validate(); err != nil {
		return 0, 0, err
	}
	i0 := int(math.Round((w.Start - start) * fs))
	i1 := int(math.Round((w.End-start)*fs)) + 1
	if i0 < 0 || i1 > n {
		return 0, 0, fmt.Errorf("%w: need [%g, %g], have [%g, %g]",
			ErrWindowNotCovered, w.Start, w.End, start, start+float64(n-1)/fs)
	}
	return i0, i1, nil
}

// Trim copies the samples of x covering w. It returns the trimmed series and
// the time of its first sample.
func Trim(x []float64, start, fs float64, w Window) ([]float64, float64, error) {
	i0, i1, err := TrimIndex(len(x), start, fs, w)
	if err != nil {
		return nil, 0, err
	}
	out := make([]float64, i1-i0)
	copy(out, x[i0:i1])
	return out, start + float64(i0)/fs, nil
}
