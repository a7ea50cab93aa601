// SPDX-License-Identifier: MIT

package mcmc

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Defaults applied by DefaultOptions.
const (
	DefaultTemperature      = 1.0
	DefaultTargetCount      = 3
	DefaultBurnIn           = 1000
	DefaultMaxIter          = 10000
	DefaultTargetAcceptance = 0.5
	DefaultStepScale        = 0.15
	DefaultBins             = 50
	DefaultClusterRadius    = 0.1
	DefaultTraceCapacity    = 10000
)

// Options configures a run.
//
// Fields:
//   - X0               - initial point, copied; nil draws uniformly in the box.
//   - Temperature      - T of the Metropolis rule; a worse move is accepted
//     with probability exp(−(f'−f)/T).
//   - TargetCount      - N, the maximum number of minima returned; the
//     candidate set keeps the best 3N accepted points.
//   - BurnIn           - warm-up iterations; nothing is recorded.
//   - MaxIter          - total iterations, burn-in included; must exceed BurnIn.
//   - TargetAcceptance - acceptance rate the step adaptation steers to.
//   - StepScale        - initial σ_d = StepScale·(Upper_d − Lower_d).
//   - Bins             - histogram bins per dimension.
//   - Seed             - RNG seed; 0 selects a fixed default seed, so runs are
//     reproducible unless a seed is given.
//   - AdaptiveStep     - rescale σ every 100 burn-in steps; sampling always
//     uses frozen steps.
//   - ClusterRadius    - single-linkage radius in unit-box coordinates.
//   - TraceCapacity    - length of the burn-in trace; 0 disables it.
//   - Logger           - phase summaries at Info, non-finite values at Debug.
//   - Observer         - receives every step; nil disables it.
type Options struct {
	X0               []float64
	Temperature      float64
	TargetCount      int
	BurnIn           int
	MaxIter          int
	TargetAcceptance float64
	StepScale        float64
	Bins             int
	Seed             int64
	AdaptiveStep     bool
	ClusterRadius    float64
	TraceCapacity    int
	Logger           *zap.Logger
	Observer         Observer
}

// Option mutates Options. Constructors panic on nonsensical values.
type Option func(*Options)

// DefaultOptions returns the documented defaults with adaptation enabled
// and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Temperature:      DefaultTemperature,
		TargetCount:      DefaultTargetCount,
		BurnIn:           DefaultBurnIn,
		MaxIter:          DefaultMaxIter,
		TargetAcceptance: DefaultTargetAcceptance,
		StepScale:        DefaultStepScale,
		Bins:             DefaultBins,
		AdaptiveStep:     true,
		ClusterRadius:    DefaultClusterRadius,
		TraceCapacity:    DefaultTraceCapacity,
		Logger:           zap.NewNop(),
	}
}

// WithX0 sets the initial point. It is copied.
func WithX0(x0 []float64) Option {
	return func(o *Options) {
		o.X0 = append([]float64(nil), x0...)
	}
}

// WithTemperature sets T. Panics unless T is positive and finite.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		if !(t > 0) || math.IsInf(t, 0) {
			panic(fmt.Sprintf("mcmc: WithTemperature(%g): must be positive and finite", t))
		}
		o.Temperature = t
	}
}

// WithTargetCount sets N. Panics if n < 1.
func WithTargetCount(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(fmt.Sprintf("mcmc: WithTargetCount(%d): must be ≥ 1", n))
		}
		o.TargetCount = n
	}
}

// WithBurnIn sets the number of burn-in iterations. Panics if n < 0.
func WithBurnIn(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(fmt.Sprintf("mcmc: WithBurnIn(%d): must be ≥ 0", n))
		}
		o.BurnIn = n
	}
}

// WithMaxIter sets the total iteration budget. It must exceed the burn-in;
// that is checked by Minimize and reported as ErrBoundsViolation.
func WithMaxIter(n int) Option {
	return func(o *Options) { o.MaxIter = n }
}

// WithTargetAcceptance sets the adaptation target. Panics outside (0, 1).
func WithTargetAcceptance(r float64) Option {
	return func(o *Options) {
		if !(r > 0 && r < 1) {
			panic(fmt.Sprintf("mcmc: WithTargetAcceptance(%g): must be in (0, 1)", r))
		}
		o.TargetAcceptance = r
	}
}

// WithStepScale sets the initial step as a fraction of each bound width.
// Panics unless 0 < s ≤ 1.
func WithStepScale(s float64) Option {
	return func(o *Options) {
		if !(s > 0 && s <= 1) {
			panic(fmt.Sprintf("mcmc: WithStepScale(%g): must be in (0, 1]", s))
		}
		o.StepScale = s
	}
}

// WithBins sets the histogram resolution. Panics if n < 1.
func WithBins(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(fmt.Sprintf("mcmc: WithBins(%d): must be ≥ 1", n))
		}
		o.Bins = n
	}
}

// WithSeed sets the RNG seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithAdaptiveStep toggles burn-in step adaptation. Disabled, σ stays at
// StepScale·(upper − lower) for the whole run.
func WithAdaptiveStep(on bool) Option {
	return func(o *Options) { o.AdaptiveStep = on }
}

// WithClusterRadius sets the single-linkage radius in unit-box coordinates.
// Panics unless r is positive and finite.
func WithClusterRadius(r float64) Option {
	return func(o *Options) {
		if !(r > 0) || math.IsInf(r, 0) {
			panic(fmt.Sprintf("mcmc: WithClusterRadius(%g): must be positive", r))
		}
		o.ClusterRadius = r
	}
}

// WithTraceCapacity bounds the burn-in trace. Panics if n < 0.
func WithTraceCapacity(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(fmt.Sprintf("mcmc: WithTraceCapacity(%d): must be ≥ 0", n))
		}
		o.TraceCapacity = n
	}
}

// WithLogger sets the logger for phase summaries. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers an observer of every proposal.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}
