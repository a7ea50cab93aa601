// SPDX-License-Identifier: MIT

package wavefield_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seisinv/earth"
	"github.com/katalvlaran/seisinv/wavefield"
)

// TestModeMatrices_RoundTrip verifies M·Minv ≈ I for crustal, mantle and
// sediment-like layers, including post-critical (evanescent) P.
func TestModeMatrices_RoundTrip(t *testing.T) {
	layers := []earth.LayerProps{
		{Vp: 6.4, Vs: 3.7, Rho: 2.7, H: 35},
		{Vp: 8.0, Vs: 4.5, Rho: 3.3, H: math.Inf(1)},
		{Vp: 2.1, Vs: 1.2, Rho: 1.97, H: 1},
	}
	p := []float64{0.0, 0.04, 0.06, 0.08, 0.2}

	for _, l := range layers {
		ms, err := wavefield.ModeMatrices(l, p)
		require.NoError(t, err, "layer %s", l)
		require.Len(t, ms.M, len(p))

		for i := range p {
			prod := wavefield.Mat4Mul(&ms.M[i], &ms.Minv[i])
			for r := 0; r < 4; r++ {
				for c := 0; c < 4; c++ {
					want := complex(0, 0)
					if r == c {
						want = 1
					}
					assert.InDelta(t, 0, cmplx.Abs(prod[r][c]-want), 1e-12,
						"layer %s p=%g entry (%d,%d)", l, p[i], r, c)
				}
			}
			assert.Equal(t, -ms.Q[i][1], ms.Q[i][0])
			assert.Equal(t, -ms.Q[i][3], ms.Q[i][2])
		}
	}
}

// TestModeMatrices_Evanescent checks that qa is imaginary beyond 1/Vp.
func TestModeMatrices_Evanescent(t *testing.T) {
	l := earth.LayerProps{Vp: 6.4, Vs: 3.7, Rho: 2.7, H: 10}
	ms, err := wavefield.ModeMatrices(l, []float64{0.2})
	require.NoError(t, err)
	qa := ms.Q[0][1]
	assert.InDelta(t, 0, real(qa), 1e-15)
	assert.Greater(t, imag(qa), 0.0)
}

// TestModeMatrices_Singular ensures critical incidence and NaN ray
// parameters are reported as invalid models, never as NaN matrices.
func TestModeMatrices_Singular(t *testing.T) {
	l := earth.LayerProps{Vp: 4, Vs: 2, Rho: 2.5, H: 1}

	_, err := wavefield.ModeMatrices(l, []float64{0.05, 0.25})
	assert.ErrorIs(t, err, wavefield.ErrInvalidModel, "p = 1/Vp makes qa zero")

	_, err = wavefield.ModeMatrices(l, []float64{math.NaN()})
	assert.ErrorIs(t, err, wavefield.ErrInvalidModel, "NaN p must be rejected")
}
