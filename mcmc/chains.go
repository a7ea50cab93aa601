// SPDX-License-Identifier: MIT

package mcmc

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/seisinv/sweep"
)

// MinimizeChains runs independent chains on a pool of workers and merges
// them. Chain i uses a seed derived from the base seed and i, so the merged
// result is reproducible regardless of scheduling. obj must be safe for
// concurrent use.
//
// Merging: candidates of all chains are pooled and re-clustered, histograms
// are summed, counters are summed, and acceptance rates and step sizes are
// averaged. The burn-in trace is that of chain 0. chains < 1 runs one chain.
//
// Complexity: chains·Minimize spread over min(workers, chains) goroutines,
// plus one re-clustering of chains·3N candidates.
//
// The first chain error (validation or cancellation) is returned.
func MinimizeChains(ctx context.Context, obj Objective, bounds Bounds, chains, workers int, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if chains < 1 {
		chains = 1
	}
	runID := uuid.NewString()
	base := o.Logger
	if base == nil {
		base = zap.NewNop()
	}

	ids := make([]int, chains)
	for i := range ids {
		ids[i] = i
	}
	results := sweep.Map(ctx, sweep.NewPool(workers), ids, func(ctx context.Context, _ int, i int) (*Result, error) {
		co := o
		co.Seed = chainSeed(o.Seed, i)
		co.Logger = base.With(zap.Int("chain", i))
		return minimize(ctx, obj, bounds, co, runID)
	})
	if err := sweep.FirstError(results); err != nil {
		return nil, err
	}

	merged := &Result{RunID: runID, BurnInTrace: results[0].Value.BurnInTrace}
	merged.Histograms = newHistograms(bounds, o.Bins)
	merged.StepSize = make([]float64, bounds.Dim())
	var pool []Point
	for _, r := range results {
		cr := r.Value
		pool = append(pool, cr.Candidates...)
		for d := range merged.Histograms {
			// Same bounds and bin count, so edges always match.
			_ = merged.Histograms[d].Merge(cr.Histograms[d])
			merged.StepSize[d] += cr.StepSize[d] / float64(chains)
		}
		merged.BurnInAcceptance += cr.BurnInAcceptance / float64(chains)
		merged.SamplingAcceptance += cr.SamplingAcceptance / float64(chains)
		merged.Evaluations += cr.Evaluations
		merged.Degenerate += cr.Degenerate
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].F < pool[j].F })
	merged.Candidates = pool
	merged.Minima = cluster(pool, bounds, o.ClusterRadius, o.TargetCount)

	base.Info("chains merged",
		zap.String("run_id", runID),
		zap.Int("chains", chains),
		zap.Int("candidates", len(pool)),
		zap.Int("minima", len(merged.Minima)))
	return merged, nil
}
