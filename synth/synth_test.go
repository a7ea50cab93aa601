// SPDX-License-Identifier: MIT

package synth_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seisinv/earth"
	"github.com/katalvlaran/seisinv/synth"
	"github.com/katalvlaran/seisinv/wavefield"
)

var model = earth.Model{
	Mantle: earth.LayerProps{Vp: 8.0, Vs: 4.5, Rho: 3.3, H: math.Inf(1)},
	Layers: []earth.LayerProps{{Vp: 6.4, Vs: 3.7, Rho: 2.7, H: 35}},
}

func TestRicker(t *testing.T) {
	w := synth.Ricker([]float64{-1, 0, 1}, 0.5, 0)
	assert.Equal(t, 1.0, w[1])
	assert.Equal(t, w[0], w[2], "symmetric about t0")
	assert.Less(t, w[0], 1.0)
}

func TestPlaneWave_Shape(t *testing.T) {
	cfg := synth.DefaultConfig()
	ens, err := synth.PlaneWave(model, cfg)
	require.NoError(t, err)

	assert.Equal(t, 10, ens.Len())
	assert.Equal(t, 701, ens.Samples())
	assert.Equal(t, 10.0, ens.Fs)
	assert.Equal(t, 0.04, ens.P[0])
	assert.InDelta(t, 0.08, ens.P[9], 1e-15)
	assert.Equal(t, "synth-0", ens.IDs[0])
	for _, d := range ens.Data {
		assert.Equal(t, d[0], ens.Data[0][0], "radial wavelet is shared")
		assert.NotZero(t, d[1][200])
	}
}

// TestPlaneWave_EvenLength drops the Nyquist bin so cancellation still holds.
func TestPlaneWave_EvenLength(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.Window = wavefield.Window{Start: -20, End: 49.9}
	ens, err := synth.PlaneWave(model, cfg)
	require.NoError(t, err)
	require.Equal(t, 700, ens.Samples())

	fc, err := wavefield.NewFluxComputer(ens)
	require.NoError(t, err)
	f, err := fc.Evaluate(model)
	require.NoError(t, err)
	assert.Less(t, f.Mean, 1e-12)
}

func TestPlaneWave_BadConfig(t *testing.T) {
	bad := []func(*synth.Config){
		func(c *synth.Config) { c.Events = 0 },
		func(c *synth.Config) { c.PMax = c.PMin - 0.01 },
		func(c *synth.Config) { c.Fs = 0 },
		func(c *synth.Config) { c.Peak = 6 },
		func(c *synth.Config) { c.Window = wavefield.Window{Start: 1, End: 0} },
	}
	for i, mutate := range bad {
		cfg := synth.DefaultConfig()
		mutate(&cfg)
		_, err := synth.PlaneWave(model, cfg)
		assert.ErrorIs(t, err, synth.ErrBadConfig, "case %d", i)
	}

	_, err := synth.PlaneWave(earth.Model{Mantle: model.Layers[0]}, synth.DefaultConfig())
	assert.ErrorIs(t, err, wavefield.ErrInvalidModel, "finite-thickness mantle")
}

func TestEvents(t *testing.T) {
	ens, err := synth.PlaneWave(model, synth.DefaultConfig())
	require.NoError(t, err)
	events := synth.Events(ens)
	require.Len(t, events, ens.Len())
	for i, ev := range events {
		assert.Equal(t, ens.IDs[i], ev.ID)
		assert.Equal(t, ens.P[i], ev.P)
		assert.Equal(t, ens.Window.Start, ev.Start)
		assert.Equal(t, -ens.Data[i][1][7], ev.Vertical[7])
	}
}
