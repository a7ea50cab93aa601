// SPDX-License-Identifier: MIT

package mcmc

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// ErrHistogramMismatch indicates histograms with different bin edges.
var ErrHistogramMismatch = errors.New("mcmc: histogram edges differ")

// Histogram is a fixed-edge incremental histogram over [Edges[0], Edges[n]].
// Bin i counts values in [Edges[i], Edges[i+1]); the upper bound itself is
// counted in the last bin.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// NewHistogram returns an empty histogram of bins equal-width bins over
// [lo, hi].
func NewHistogram(lo, hi float64, bins int) Histogram {
	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)
	edges[bins] = hi
	return Histogram{Edges: edges, Counts: make([]int, bins)}
}

// Add counts x and reports whether it fell inside the range.
func (h *Histogram) Add(x float64) bool {
	i := floats.Within(h.Edges, x)
	if i < 0 {
		if x != h.Edges[len(h.Edges)-1] {
			return false
		}
		i = len(h.Counts) - 1
	}
	h.Counts[i]++
	return true
}

// Total returns the number of counted values.
func (h Histogram) Total() int {
	var n int
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Centers returns the bin midpoints.
func (h Histogram) Centers() []float64 {
	c := make([]float64, len(h.Counts))
	for i := range c {
		c[i] = 0.5 * (h.Edges[i] + h.Edges[i+1])
	}
	return c
}

// Mode returns the center of the fullest bin (the first one on ties).
func (h Histogram) Mode() float64 {
	best := 0
	for i, c := range h.Counts {
		if c > h.Counts[best] {
			best = i
		}
	}
	return 0.5 * (h.Edges[best] + h.Edges[best+1])
}

// Merge adds the counts of o, which must share the same edges.
func (h *Histogram) Merge(o Histogram) error {
	if !floats.Equal(h.Edges, o.Edges) {
		return ErrHistogramMismatch
	}
	for i, c := range o.Counts {
		h.Counts[i] += c
	}
	return nil
}

func newHistograms(b Bounds, bins int) []Histogram {
	hs := make([]Histogram, b.Dim())
	for i := range hs {
		hs[i] = NewHistogram(b.Lower[i], b.Upper[i], bins)
	}
	return hs
}
