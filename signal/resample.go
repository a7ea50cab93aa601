// SPDX-License-Identifier: MIT

package signal

import "math"

// DefaultLanczosA is the Lanczos kernel half-width used for rate conversion.
const DefaultLanczosA = 10

// sinc is the normalized cardinal sine sin(πu)/(πu).
func sinc(u float64) float64 {
	if u == 0 {
		return 1
	}
	pu := math.Pi * u
	return math.Sin(pu) / pu
}

// Lanczos interpolates the uniformly sampled series x (first sample at
// start, rate fs) at the requested times using a Lanczos kernel of
// half-width a samples. Times outside the series support evaluate to the
// truncated kernel sum, which tends to zero away from the data.
func Lanczos(x []float64, start, fs float64, times []float64, a int) []float64 {
	out := make([]float64, len(times))
	if a < 1 {
		a = DefaultLanczosA
	}
	fa := float64(a)
	for j, t := range times {
		u := (t - start) * fs
		lo := int(math.Floor(u)) - a + 1
		hi := int(math.Floor(u)) + a
		if lo < 0 {
			lo = 0
		}
		if hi > len(x)-1 {
			hi = len(x) - 1
		}
		var s float64
		for i := lo; i <= hi; i++ {
			d := u - float64(i)
			if math.Abs(d) >= fa {
				continue
			}
			s += x[i] * sinc(d) * sinc(d/fa)
		}
		out[j] = s
	}
	return out
}

// Sinc reconstructs the band-limited signal sampled at the uniform times
// srcTimes (values x) onto dstTimes using Whittaker–Shannon interpolation.
func Sinc(srcTimes, x, dstTimes []float64) []float64 {
	out := make([]float64, len(dstTimes))
	if len(srcTimes) == 0 {
		return out
	}
	dt := 1.0
	if len(srcTimes) > 1 {
		dt = (srcTimes[len(srcTimes)-1] - srcTimes[0]) / float64(len(srcTimes)-1)
	}
	for j, t := range dstTimes {
		var s float64
		for i, ti := range srcTimes {
			s += x[i] * sinc((t-ti)/dt)
		}
		out[j] = s
	}
	return out
}

// Resample converts x from rate fsIn to fsOut. When downsampling, a
// 2-corner zero-phase low-pass at fsOut/2 is applied first to avoid
// aliasing; the rate change itself uses Lanczos interpolation. The output
// starts at the same time as the input and spans the same duration.
func Resample(x []float64, fsIn, fsOut float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyTrace
	}
	if !(fsIn > 0) || !(fsOut > 0) || math.IsInf(fsIn, 0) || math.IsInf(fsOut, 0) {
		return nil, ErrBadRate
	}
	if fsIn == fsOut {
		out := make([]float64, len(x))
		copy(out, x)
		return out, nil
	}
	src := x
	if fsOut < fsIn {
		lp, err := LowpassZeroPhase(x, fsIn, fsOut/2, 2)
		if err != nil {
			return nil, err
		}
		src = lp
	}
	duration := float64(len(x)-1) / fsIn
	n := int(math.Floor(duration*fsOut+1e-9)) + 1
	return Lanczos(src, 0, fsIn, Times(n, 0, fsOut), DefaultLanczosA), nil
}
