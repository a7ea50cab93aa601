// SPDX-License-Identifier: MIT

package mcmc_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seisinv/mcmc"
)

// TestMinimizeChains merges independent chains reproducibly.
func TestMinimizeChains(t *testing.T) {
	run := func(workers int) *mcmc.Result {
		r, err := mcmc.MinimizeChains(context.Background(), bowl, box, 4, workers,
			mcmc.WithBurnIn(500), mcmc.WithMaxIter(2500), mcmc.WithSeed(5))
		require.NoError(t, err)
		return r
	}
	a := run(1)
	b := run(4)

	require.Len(t, a.Minima, 1)
	assert.InDelta(t, 1.0, a.Minima[0].X[0], 0.2)
	assert.InDelta(t, -0.5, a.Minima[0].X[1], 0.2)
	assert.Len(t, a.Candidates, 4*9)
	assert.Equal(t, 4*2501, a.Evaluations)

	if diff := cmp.Diff(a.Minima, b.Minima); diff != "" {
		t.Errorf("scheduling changed the result (-1 worker +4 workers):\n%s", diff)
	}
	assert.Equal(t, a.Histograms, b.Histograms)
}

func TestMinimizeChains_Errors(t *testing.T) {
	_, err := mcmc.MinimizeChains(context.Background(), bowl, box, 2, 2,
		mcmc.WithBurnIn(10), mcmc.WithMaxIter(5))
	assert.ErrorIs(t, err, mcmc.ErrBoundsViolation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = mcmc.MinimizeChains(ctx, bowl, box, 2, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
