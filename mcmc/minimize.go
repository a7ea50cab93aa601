// SPDX-License-Identifier: MIT

package mcmc

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// adaptInterval is the number of burn-in steps between step-size updates.
	adaptInterval = 100

	// maxProposalTries bounds the redraws of an out-of-bounds proposal; on
	// exhaustion the step is a null move.
	maxProposalTries = 1000

	// minStepFraction is the smallest adapted step relative to the bound width.
	minStepFraction = 1e-6
)

// chain is the state of one run. Step sizes live here, never in globals,
// so runs are independent.
type chain struct {
	obj    Objective
	bounds Bounds
	opts   Options
	rng    *rand.Rand
	log    *zap.Logger
	beta   float64

	x, prop []float64
	f       float64
	step    []float64

	evals, degenerate int

	// per-dimension proposal and acceptance counts of the current
	// adaptation window
	tried, took []int
}

// Minimize searches the box for up to N minima of obj.
//
// The chain runs MaxIter iterations: BurnIn warm-up steps followed by
// MaxIter−BurnIn sampling steps whose accepted points feed the candidate
// set and the histograms. ctx is checked between iterations; on
// cancellation ctx.Err() is returned.
//
// Each iteration perturbs one dimension, drawn uniformly, by a normal step,
// redrawing moves that leave the box. A move is accepted when it improves f
// or with probability exp(−Δf/T); non-finite values are always rejected.
//
// Complexity:
//
//	Time   = O(MaxIter·(C_f + log N)) plus O((3N)²·d) for the final clustering,
//	         where C_f is the cost of one objective call.
//	Memory = O(N·d + Bins·d + TraceCapacity·d)
//
// Errors: ErrNilObjective; ErrBoundsViolation for invalid bounds, an X0 of
// the wrong dimension or outside the box, or MaxIter ≤ BurnIn.
func Minimize(ctx context.Context, obj Objective, bounds Bounds, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return minimize(ctx, obj, bounds, o, uuid.NewString())
}

func minimize(ctx context.Context, obj Objective, bounds Bounds, o Options, runID string) (*Result, error) {
	c, err := newChain(obj, bounds, o, runID)
	if err != nil {
		return nil, err
	}
	res := &Result{RunID: runID}

	trace := newRing(o.TraceCapacity)
	trace.push(Point{X: c.x, F: c.f})
	var acceptedBurn int
	for i := 0; i < o.BurnIn; i++ {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		if c.advance(PhaseBurnIn, i) {
			acceptedBurn++
			trace.push(Point{X: c.x, F: c.f})
		}
		if o.AdaptiveStep && (i+1)%adaptInterval == 0 {
			c.adapt()
		}
	}
	if o.BurnIn > 0 {
		res.BurnInAcceptance = float64(acceptedBurn) / float64(o.BurnIn)
	}
	c.log.Info("burn-in finished",
		zap.Int("steps", o.BurnIn),
		zap.Float64("acceptance", res.BurnInAcceptance),
		zap.Float64("f", c.f),
		zap.Float64s("step", c.step))

	cands := newCandidates(3 * o.TargetCount)
	hists := newHistograms(bounds, o.Bins)
	sampling := o.MaxIter - o.BurnIn
	var accepted int
	for i := 0; i < sampling; i++ {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		if !c.advance(PhaseSampling, i) {
			continue
		}
		accepted++
		cands.offer(Point{X: c.x, F: c.f})
		for d, v := range c.x {
			hists[d].Add(v)
		}
	}
	res.SamplingAcceptance = float64(accepted) / float64(sampling)

	res.Candidates = cands.sorted()
	res.Minima = cluster(res.Candidates, bounds, o.ClusterRadius, o.TargetCount)
	res.Histograms = hists
	res.Evaluations = c.evals
	res.Degenerate = c.degenerate
	res.StepSize = append([]float64(nil), c.step...)
	res.BurnInTrace = trace.points()

	fields := []zap.Field{
		zap.Int("steps", sampling),
		zap.Float64("acceptance", res.SamplingAcceptance),
		zap.Int("evaluations", res.Evaluations),
		zap.Int("degenerate", res.Degenerate),
		zap.Int("minima", len(res.Minima)),
	}
	if best, ok := res.Best(); ok {
		fields = append(fields, zap.Float64s("best_x", best.X), zap.Float64("best_f", best.F))
	}
	c.log.Info("sampling finished", fields...)
	return res, nil
}

func newChain(obj Objective, bounds Bounds, o Options, runID string) (*chain, error) {
	if obj == nil {
		return nil, ErrNilObjective
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if o.MaxIter <= o.BurnIn {
		return nil, fmt.Errorf("%w: maxIter %d not greater than burn-in %d", ErrBoundsViolation, o.MaxIter, o.BurnIn)
	}
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dim := bounds.Dim()
	c := &chain{
		obj:    obj,
		bounds: bounds,
		opts:   o,
		rng:    rngFromSeed(o.Seed),
		log:    log.With(zap.String("run_id", runID)),
		beta:   1 / o.Temperature,
		x:      make([]float64, dim),
		prop:   make([]float64, dim),
		step:   make([]float64, dim),
		tried:  make([]int, dim),
		took:   make([]int, dim),
	}
	for d := range c.step {
		c.step[d] = o.StepScale * (bounds.Upper[d] - bounds.Lower[d])
	}

	if o.X0 != nil {
		if len(o.X0) != dim {
			return nil, fmt.Errorf("%w: x0 has %d dimensions, bounds %d", ErrBoundsViolation, len(o.X0), dim)
		}
		if !bounds.Contains(o.X0) {
			return nil, fmt.Errorf("%w: x0 %v outside bounds", ErrBoundsViolation, o.X0)
		}
		copy(c.x, o.X0)
	} else {
		for d := range c.x {
			c.x[d] = bounds.Lower[d] + c.rng.Float64()*(bounds.Upper[d]-bounds.Lower[d])
		}
	}

	c.f = obj(c.x)
	c.evals++
	if !finite(c.f) {
		c.f = math.Inf(1)
	}
	return c, nil
}

// propose fills c.prop with a single-site move of c.x and returns the
// perturbed dimension.
func (c *chain) propose() int {
	copy(c.prop, c.x)
	dim := len(c.x)
	for try := 0; try < maxProposalTries; try++ {
		d := c.rng.Intn(dim)
		v := c.x[d] + c.step[d]*c.rng.NormFloat64()
		if v >= c.bounds.Lower[d] && v <= c.bounds.Upper[d] {
			c.prop[d] = v
			return d
		}
	}
	return c.rng.Intn(dim)
}

// advance performs one Metropolis step and reports whether it was accepted.
func (c *chain) advance(phase Phase, iter int) bool {
	d := c.propose()
	fNew := c.obj(c.prop)
	c.evals++
	u := c.rng.Float64()
	c.tried[d]++

	degenerate := !finite(fNew)
	accepted := false
	if degenerate {
		c.degenerate++
	} else {
		logAlpha := -(fNew - c.f) * c.beta
		accepted = logAlpha >= 0 || math.Log(u) <= logAlpha
	}
	if accepted {
		c.x, c.prop = c.prop, c.x
		c.f = fNew
		c.took[d]++
	}

	if c.opts.Observer != nil {
		c.opts.Observer.Observe(Step{
			Phase:      phase,
			Iter:       iter,
			Dim:        d,
			Proposal:   c.xOrProp(accepted),
			Value:      fNew,
			Current:    c.f,
			Accepted:   accepted,
			Degenerate: degenerate,
		})
	}
	return accepted
}

// xOrProp returns the buffer holding the last proposal.
func (c *chain) xOrProp(accepted bool) []float64 {
	if accepted {
		return c.x
	}
	return c.prop
}

// adapt rescales each step by exp(rate − target) using the acceptance of
// the last window, keeping it within [minStepFraction, 1] of the width.
func (c *chain) adapt() {
	for d := range c.step {
		if c.tried[d] == 0 {
			continue
		}
		rate := float64(c.took[d]) / float64(c.tried[d])
		w := c.bounds.Upper[d] - c.bounds.Lower[d]
		s := c.step[d] * math.Exp(rate-c.opts.TargetAcceptance)
		c.step[d] = math.Min(w, math.Max(minStepFraction*w, s))
		c.tried[d], c.took[d] = 0, 0
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
