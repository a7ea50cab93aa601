// SPDX-License-Identifier: MIT

package mcmc_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seisinv/mcmc"
)

func TestPolish_Bowl(t *testing.T) {
	p, err := mcmc.Polish(context.Background(), bowl, box, []float64{0.8, -0.2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.X[0], 1e-3)
	assert.InDelta(t, -0.5, p.X[1], 1e-3)
	assert.Less(t, p.F, bowl([]float64{0.8, -0.2}))
}

// TestPolish_StaysInBounds: the unconstrained minimum lies outside the box.
func TestPolish_StaysInBounds(t *testing.T) {
	obj := func(x []float64) float64 { return (x[0]-5)*(x[0]-5) + x[1]*x[1] }
	p, err := mcmc.Polish(context.Background(), obj, box, []float64{2, 1})
	require.NoError(t, err)
	assert.True(t, box.Contains(p.X))
	assert.InDelta(t, 3.0, p.X[0], 0.05)
}

func TestPolish_Errors(t *testing.T) {
	_, err := mcmc.Polish(context.Background(), bowl, box, []float64{4, 0})
	assert.ErrorIs(t, err, mcmc.ErrBoundsViolation)

	_, err = mcmc.Polish(context.Background(), nil, box, []float64{0, 0})
	assert.ErrorIs(t, err, mcmc.ErrNilObjective)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = mcmc.Polish(ctx, bowl, box, []float64{0, 0})
	assert.ErrorIs(t, err, context.Canceled)

	p, err := mcmc.Polish(context.Background(), func([]float64) float64 { return math.NaN() }, box, []float64{0, 0})
	require.NoError(t, err)
	assert.True(t, math.IsInf(p.F, 1))
}
