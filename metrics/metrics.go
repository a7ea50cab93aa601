// SPDX-License-Identifier: MIT

// Package metrics exports optimizer progress as Prometheus collectors.
//
// A Recorder implements mcmc.Observer. It is safe for concurrent use, so
// one Recorder can observe every chain of mcmc.MinimizeChains.
package metrics

import (
	"fmt"
	"io"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/seisinv/mcmc"
)

// Namespace prefixes every metric name.
const Namespace = "seisinv"

// Recorder counts optimizer steps per phase and tracks the objective.
type Recorder struct {
	proposals  *prometheus.CounterVec
	accepted   *prometheus.CounterVec
	degenerate *prometheus.CounterVec
	current    prometheus.Gauge
	values     prometheus.Histogram
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		proposals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "mcmc",
				Name:      "proposals_total",
				Help:      "Proposals evaluated, by phase",
			},
			[]string{"phase"},
		),
		accepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "mcmc",
				Name:      "accepted_total",
				Help:      "Proposals accepted, by phase",
			},
			[]string{"phase"},
		),
		degenerate: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "mcmc",
				Name:      "degenerate_total",
				Help:      "Proposals whose objective was NaN or infinite, by phase",
			},
			[]string{"phase"},
		),
		current: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "mcmc",
			Name:      "current_objective",
			Help:      "Objective value of the chain state after the latest step",
		}),
		values: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "mcmc",
			Name:      "objective",
			Help:      "Finite objective values of evaluated proposals",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 12),
		}),
	}
	for _, c := range []prometheus.Collector{r.proposals, r.accepted, r.degenerate, r.current, r.values} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return r, nil
}

// Observe records one optimizer step.
func (r *Recorder) Observe(s mcmc.Step) {
	phase := s.Phase.String()
	r.proposals.WithLabelValues(phase).Inc()
	if s.Accepted {
		r.accepted.WithLabelValues(phase).Inc()
	}
	if s.Degenerate {
		r.degenerate.WithLabelValues(phase).Inc()
	} else {
		r.values.Observe(s.Value)
	}
	if !math.IsInf(s.Current, 0) {
		r.current.Set(s.Current)
	}
}

var _ mcmc.Observer = (*Recorder)(nil)

// Write gathers g and writes it to w in the Prometheus text format.
func Write(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
