// SPDX-License-Identifier: MIT

package wavefield_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/seisinv/synth"
	"github.com/katalvlaran/seisinv/wavefield"
)

func rawEvents(t testing.TB, cfg synth.Config) []wavefield.Event {
	t.Helper()
	ens, err := synth.PlaneWave(trueModel, cfg)
	require.NoError(t, err)
	return synth.Events(ens)
}

// TestIngest_Idempotent: ingesting identical data twice yields identical
// prepared ensembles and bit-identical flux.
func TestIngest_Idempotent(t *testing.T) {
	cfg := synth.DefaultConfig()

	a := wavefield.New()
	require.NoError(t, a.Ingest(rawEvents(t, cfg), 10, wavefield.DefaultTimeWindow, wavefield.DefaultCutWindow))
	b := wavefield.New(wavefield.WithLogger(zap.NewNop()))
	require.NoError(t, b.Ingest(rawEvents(t, cfg), 10, wavefield.DefaultTimeWindow, wavefield.DefaultCutWindow))

	assert.Equal(t, a.Ensemble(), b.Ensemble())
	assert.Equal(t, 701, a.Ensemble().Samples())

	m := offModel(40, 3.5)
	fa, err := a.Evaluate(m)
	require.NoError(t, err)
	fb, err := b.Evaluate(m)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Greater(t, fa.Mean, 0.0)
}

// TestIngest_ReplacesBuffers: prepared traces are written back into the
// caller's events and the stored vertical carries the flipped sign.
func TestIngest_ReplacesBuffers(t *testing.T) {
	events := rawEvents(t, synth.DefaultConfig())
	fc := wavefield.New()
	require.NoError(t, fc.Ingest(events, 10, wavefield.DefaultTimeWindow, wavefield.DefaultCutWindow))

	ens := fc.Ensemble()
	for i, ev := range events {
		require.Len(t, ev.Vertical, ens.Samples())
		assert.InDelta(t, -20.0, ev.Start, 1e-9)
		for j := range ev.Vertical {
			assert.Equal(t, -ev.Vertical[j], ens.Data[i][1][j])
		}
	}
	// Outside the cut window the taper leaves almost nothing.
	assert.InDelta(t, 0, events[0].Radial[0], 1e-3)
}

// TestIngest_Resample brings 20 Hz data onto a 10 Hz base.
func TestIngest_Resample(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.Fs = 20
	cfg.Window = wavefield.Window{Start: -25, End: 55}
	events := rawEvents(t, cfg)

	fc := wavefield.New()
	require.NoError(t, fc.Ingest(events, 10, wavefield.DefaultTimeWindow, wavefield.DefaultCutWindow))
	ens := fc.Ensemble()
	assert.Equal(t, 10.0, ens.Fs)
	assert.Equal(t, 701, ens.Samples())
	for _, d := range ens.Data {
		for _, v := range d[0] {
			require.False(t, math.IsNaN(v))
		}
	}
}

// TestIngest_Rejects covers validation before any spectral work.
func TestIngest_Rejects(t *testing.T) {
	fresh := func() []wavefield.Event { return rawEvents(t, synth.DefaultConfig()) }
	tw, cw := wavefield.DefaultTimeWindow, wavefield.DefaultCutWindow
	fc := wavefield.New()

	assert.ErrorIs(t, fc.Ingest(nil, 10, tw, cw), wavefield.ErrShapeMismatch)

	ev := fresh()
	ev[3].Vertical = ev[3].Vertical[:100]
	assert.ErrorIs(t, fc.Ingest(ev, 10, tw, cw), wavefield.ErrShapeMismatch)

	ev = fresh()
	ev[1].Radial[5] = math.NaN()
	assert.ErrorIs(t, fc.Ingest(ev, 10, tw, cw), wavefield.ErrShapeMismatch)

	ev = fresh()
	ev[0].Fs = 0
	assert.ErrorIs(t, fc.Ingest(ev, 10, tw, cw), wavefield.ErrShapeMismatch)

	ev = fresh()
	assert.ErrorIs(t, fc.Ingest(ev, 10, wavefield.Window{Start: -30, End: 50}, cw), wavefield.ErrWindowNotCovered)

	ev = fresh()
	assert.ErrorIs(t, fc.Ingest(ev, 10, tw, wavefield.Window{Start: 60, End: 70}), wavefield.ErrBadWindow)

	_, err := fc.Evaluate(trueModel)
	assert.ErrorIs(t, err, wavefield.ErrNotIngested, "failed ingest leaves the computer empty")
}

// TestIngest_FailureLeavesEvents: a late failure must not rewrite events
// that were already prepared.
func TestIngest_FailureLeavesEvents(t *testing.T) {
	events := rawEvents(t, synth.DefaultConfig())
	snapshot := rawEvents(t, synth.DefaultConfig())
	last := len(events) - 1
	events[last].Start = 0
	snapshot[last].Start = 0

	fc := wavefield.New()
	err := fc.Ingest(events, 10, wavefield.DefaultTimeWindow, wavefield.DefaultCutWindow)
	require.ErrorIs(t, err, wavefield.ErrWindowNotCovered)
	assert.Equal(t, snapshot, events)
}
