// SPDX-License-Identifier: MIT

package signal

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// LowpassZeroPhase applies a zero-phase Butterworth low-pass filter of the
// given number of corners to x and returns the filtered copy.
//
// The filter is applied in the frequency domain with gain
//
//	|H(f)|² = 1 / (1 + (f/fc)^(2·corners))
//
// which is the response of a forward-backward (filtfilt) pass of an order
// "corners" Butterworth filter, so the output has no phase shift.
func LowpassZeroPhase(x []float64, fs, fc float64, corners int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyTrace
	}
	if !(fs > 0) || math.IsInf(fs, 0) || !(fc > 0) {
		return nil, ErrBadRate
	}
	if corners < 1 {
		corners = 1
	}
	fft := fourier.NewFFT(len(x))
	coeff := fft.Coefficients(nil, x)
	for k := range coeff {
		f := fft.Freq(k) * fs
		g := 1 / (1 + math.Pow(f/fc, float64(2*corners)))
		coeff[k] *= complex(g, 0)
	}
	out := fft.Sequence(nil, coeff)
	scale := 1 / float64(len(x))
	for i := range out {
		out[i] *= scale
	}
	return out, nil
}
