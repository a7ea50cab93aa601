// SPDX-License-Identifier: MIT

package signal

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DetrendInPlace removes the least-squares straight line from x.
func DetrendInPlace(x []float64) {
	n := len(x)
	if n < 2 {
		for i := range x {
			x[i] = 0
		}
		return
	}
	idx := make([]float64, n)
	for i := range idx {
		idx[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(idx, x, nil, false)
	for i := range x {
		x[i] -= alpha + beta*idx[i]
	}
}

// TaperInPlace applies a symmetric Hann (cosine) taper to both ends of x.
// fraction is the share of samples tapered at each end, clipped to [0, 0.5].
func TaperInPlace(x []float64, fraction float64) {
	n := len(x)
	if n < 2 || !(fraction > 0) {
		return
	}
	if fraction > 0.5 {
		fraction = 0.5
	}
	w := int(fraction * float64(n))
	if w < 1 {
		return
	}
	for i := 0; i < w; i++ {
		f := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(w)))
		x[i] *= f
		x[n-1-i] *= f
	}
}
