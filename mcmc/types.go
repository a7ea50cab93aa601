// SPDX-License-Identifier: MIT

package mcmc

import (
	"fmt"
	"math"
)

// Objective is the scalar function to minimize. Fixed arguments are
// captured by the closure. NaN or ±Inf results mark a degenerate point.
type Objective func(x []float64) float64

// Bounds is the closed search box Lower[i] ≤ x[i] ≤ Upper[i].
type Bounds struct {
	Lower []float64
	Upper []float64
}

// Dim returns the number of dimensions.
func (b Bounds) Dim() int { return len(b.Lower) }

// Validate checks that the box is non-empty, finite and not inverted.
func (b Bounds) Validate() error {
	if len(b.Lower) == 0 || len(b.Lower) != len(b.Upper) {
		return fmt.Errorf("%w: %d lower and %d upper bounds", ErrBoundsViolation, len(b.Lower), len(b.Upper))
	}
	for i := range b.Lower {
		lo, hi := b.Lower[i], b.Upper[i]
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(lo < hi) {
			return fmt.Errorf("%w: dimension %d has [%g, %g]", ErrBoundsViolation, i, lo, hi)
		}
	}
	return nil
}

// Contains reports whether x lies in the box.
func (b Bounds) Contains(x []float64) bool {
	if len(x) != len(b.Lower) {
		return false
	}
	for i, v := range x {
		if !(v >= b.Lower[i] && v <= b.Upper[i]) {
			return false
		}
	}
	return true
}

// normalize maps x into the unit box.
func (b Bounds) normalize(dst, x []float64) {
	for i, v := range x {
		dst[i] = (v - b.Lower[i]) / (b.Upper[i] - b.Lower[i])
	}
}

// Point is a location in parameter space with its objective value.
type Point struct {
	X []float64
	F float64
}

// Phase identifies the chain phase.
type Phase int

const (
	// PhaseBurnIn is the discarded warm-up phase.
	PhaseBurnIn Phase = iota
	// PhaseSampling is the recorded phase.
	PhaseSampling
)

// String returns "burnin" or "sampling".
func (p Phase) String() string {
	switch p {
	case PhaseBurnIn:
		return "burnin"
	case PhaseSampling:
		return "sampling"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Step describes one proposal of the chain. The observer sees BurnIn burn-in
// steps followed by MaxIter−BurnIn sampling steps.
//
// Proposal is only valid during the Observe call; copy it to retain it.
type Step struct {
	Phase      Phase
	Iter       int // 0-based within the phase
	Dim        int // perturbed dimension
	Proposal   []float64
	Value      float64 // objective at Proposal
	Current    float64 // objective of the chain state after the step
	Accepted   bool
	Degenerate bool // Value was NaN or ±Inf
}

// Observer receives every step of a run. Implementations are called from
// the chain's goroutine and must not block for long; with MinimizeChains
// one observer may be called from several goroutines at once.
type Observer interface {
	Observe(s Step)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Step)

// Observe calls f(s).
func (f ObserverFunc) Observe(s Step) { f(s) }

// Result is the outcome of a run.
type Result struct {
	// RunID identifies the run in logs and metrics.
	RunID string

	// Minima holds up to N cluster representatives, best first.
	Minima []Point

	// Candidates is the retained best-3N set, best first.
	Candidates []Point

	// Histograms holds one marginal histogram per dimension of the
	// sampling-phase accepted points.
	Histograms []Histogram

	// BurnInAcceptance and SamplingAcceptance are the accepted share of
	// proposals in each phase.
	BurnInAcceptance   float64
	SamplingAcceptance float64

	// Evaluations counts objective calls, including f(x0).
	Evaluations int

	// Degenerate counts proposals rejected for a non-finite objective.
	Degenerate int

	// StepSize is the per-dimension proposal scale used during sampling.
	StepSize []float64

	// BurnInTrace holds the most recent accepted burn-in states, oldest
	// first, for diagnostics.
	BurnInTrace []Point
}

// Best returns the best minimum. ok is false when no point was accepted
// during sampling.
func (r *Result) Best() (Point, bool) {
	if r == nil || len(r.Minima) == 0 {
		return Point{}, false
	}
	return r.Minima[0], true
}
