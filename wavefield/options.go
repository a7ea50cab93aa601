// SPDX-License-Identifier: MIT

package wavefield

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Options configures a FluxComputer. The zero value is not usable; start
// from DefaultOptions, which New does.
type Options struct {
	// Logger receives per-event ingest decisions at Debug level.
	Logger *zap.Logger

	// TaperFraction is the per-end cosine taper of the cut wavelet.
	TaperFraction float64
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns a no-op logger and a 10% taper.
func DefaultOptions() Options {
	return Options{
		Logger:        zap.NewNop(),
		TaperFraction: DefaultTaperFraction,
	}
}

// WithLogger sets the ingest logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTaperFraction overrides the cut-wavelet taper.
// Panics if f is outside [0, 0.5].
func WithTaperFraction(f float64) Option {
	return func(o *Options) {
		if math.IsNaN(f) || f < 0 || f > 0.5 {
			panic(fmt.Sprintf("wavefield: WithTaperFraction(%g): must be in [0, 0.5]", f))
		}
		o.TaperFraction = f
	}
}

// evalOptions configures a single Evaluate call.
type evalOptions struct {
	fluxWindow Window // energy integration window, onset-relative
	keepMantle bool   // fill Flux.Mantle
}

// EvalOption mutates the options of one Evaluate call.
type EvalOption func(*evalOptions)

// WithFluxWindow sets the energy integration window (default (-10, 20) s).
// It must lie inside the ingested time window.
func WithFluxWindow(w Window) EvalOption {
	return func(o *evalOptions) { o.fluxWindow = w }
}

// WithoutMantleField skips the copy of the mantle mode field into
// Flux.Mantle. Objective evaluations use it to avoid the allocation.
func WithoutMantleField() EvalOption {
	return func(o *evalOptions) { o.keepMantle = false }
}
