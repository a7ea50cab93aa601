// SPDX-License-Identifier: MIT

package orientation

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Defaults of the qualification rules.
const (
	DefaultMinMagnitude     = 5.5
	DefaultMinVarianceRatio = 0.80
	DefaultMinEvents        = 5
)

// Defaults of the raw-arrival preparation.
const (
	DefaultRate          = 10.0 // Hz
	DefaultTaperFraction = 0.05
	DefaultBefore        = 1.0 // s ahead of the onset
	DefaultAfter         = 3.0 // s past the onset
)

// Options holds the qualification thresholds and the preparation
// parameters applied to raw arrivals.
type Options struct {
	MinMagnitude     float64 // inclusive magnitude threshold
	MinVarianceRatio float64 // dominant share of variance, in [0, 1]
	MinEvents        int     // qualifying arrivals needed for an estimate

	Rate          float64 // analysis sampling rate of raw arrivals, Hz
	TaperFraction float64 // per-end taper share before resampling
	Before, After float64 // arrival window around the onset, s

	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns magnitude ≥ 5.5, variance ratio ≥ 0.80, ≥ 5 events,
// and raw arrivals cut to (−1 s, +3 s) at 10 Hz after a 5% taper.
func DefaultOptions() Options {
	return Options{
		MinMagnitude:     DefaultMinMagnitude,
		MinVarianceRatio: DefaultMinVarianceRatio,
		MinEvents:        DefaultMinEvents,
		Rate:             DefaultRate,
		TaperFraction:    DefaultTaperFraction,
		Before:           DefaultBefore,
		After:            DefaultAfter,
		Logger:           zap.NewNop(),
	}
}

// WithMinMagnitude sets the magnitude threshold.
func WithMinMagnitude(m float64) Option {
	return func(o *Options) { o.MinMagnitude = m }
}

// WithMinVarianceRatio sets the polarization threshold. Panics outside [0, 1].
func WithMinVarianceRatio(r float64) Option {
	return func(o *Options) {
		if !(r >= 0 && r <= 1) {
			panic(fmt.Sprintf("orientation: WithMinVarianceRatio(%g): must be in [0, 1]", r))
		}
		o.MinVarianceRatio = r
	}
}

// WithMinEvents sets the number of qualifying events needed. Panics if n < 1.
func WithMinEvents(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(fmt.Sprintf("orientation: WithMinEvents(%d): must be ≥ 1", n))
		}
		o.MinEvents = n
	}
}

// WithRate sets the analysis rate of raw arrivals. Panics unless positive
// and finite.
func WithRate(fs float64) Option {
	return func(o *Options) {
		if !(fs > 0) || math.IsInf(fs, 0) {
			panic(fmt.Sprintf("orientation: WithRate(%g): must be positive", fs))
		}
		o.Rate = fs
	}
}

// WithArrivalWindow sets the cut around the onset of raw arrivals.
// Panics on negative or all-zero extents.
func WithArrivalWindow(before, after float64) Option {
	return func(o *Options) {
		if !(before >= 0 && after >= 0) || before+after == 0 {
			panic(fmt.Sprintf("orientation: WithArrivalWindow(%g, %g): invalid extent", before, after))
		}
		o.Before, o.After = before, after
	}
}

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
