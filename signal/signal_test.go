// SPDX-License-Identifier: MIT

package signal_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/seisinv/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestTrimIndex(t *testing.T) {
	// 101 samples at 10 Hz from -5 s to +5 s.
	i0, i1, err := signal.TrimIndex(101, -5, 10, signal.Window{Start: -1, End: 3})
	require.NoError(t, err)
	assert.Equal(t, 40, i0)
	assert.Equal(t, 81, i1)

	_, _, err = signal.TrimIndex(101, -5, 10, signal.Window{Start: -6, End: 3})
	assert.ErrorIs(t, err, signal.ErrWindowNotCovered)

	_, _, err = signal.TrimIndex(101, -5, 10, signal.Window{Start: 3, End: -1})
	assert.ErrorIs(t, err, signal.ErrBadWindow)

	_, _, err = signal.TrimIndex(0, -5, 10, signal.Window{Start: -1, End: 1})
	assert.ErrorIs(t, err, signal.ErrEmptyTrace)

	_, _, err = signal.TrimIndex(10, -5, 0, signal.Window{Start: -1, End: 1})
	assert.ErrorIs(t, err, signal.ErrBadRate)
}

func TestTrim(t *testing.T) {
	x := make([]float64, 21)
	for i := range x {
		x[i] = float64(i)
	}
	out, start, err := signal.Trim(x, -1, 10, signal.Window{Start: -0.5, End: 0.5})
	require.NoError(t, err)
	assert.InDelta(t, -0.5, start, 1e-12)
	assert.Equal(t, []float64{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, out)

	out[0] = -1
	assert.Equal(t, 5.0, x[5], "Trim must copy")
}

func TestDetrendInPlace(t *testing.T) {
	x := make([]float64, 50)
	for i := range x {
		x[i] = 3 + 0.25*float64(i)
	}
	signal.DetrendInPlace(x)
	for _, v := range x {
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestTaperInPlace(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = 1
	}
	signal.TaperInPlace(x, 0.1)
	assert.Equal(t, 0.0, x[0])
	assert.Equal(t, 0.0, x[99])
	assert.Equal(t, 1.0, x[50])
	assert.Less(t, x[5], 1.0)
}

func TestLowpassZeroPhase(t *testing.T) {
	n := 256
	dc := make([]float64, n)
	alt := make([]float64, n)
	for i := range dc {
		dc[i] = 2
		alt[i] = math.Pow(-1, float64(i))
	}
	out, err := signal.LowpassZeroPhase(dc, 20, 2.5, 2)
	require.NoError(t, err)
	for _, v := range out {
		assert.InDelta(t, 2, v, 1e-9)
	}

	out, err = signal.LowpassZeroPhase(alt, 20, 2.5, 2)
	require.NoError(t, err)
	assert.Less(t, floats.Norm(out, math.Inf(1)), 0.01)

	_, err = signal.LowpassZeroPhase(nil, 20, 2.5, 2)
	assert.ErrorIs(t, err, signal.ErrEmptyTrace)
}

func TestLanczos_ReproducesSamples(t *testing.T) {
	x := []float64{0, 1, 4, 9, 16, 25, 36, 49}
	times := signal.Times(len(x), 0, 2)
	out := signal.Lanczos(x, 0, 2, times, 3)
	for i := range x {
		assert.InDelta(t, x[i], out[i], 1e-9)
	}
}

func TestSinc_ReproducesSamples(t *testing.T) {
	src := signal.Times(16, -1, 4)
	x := make([]float64, len(src))
	for i, ti := range src {
		x[i] = math.Sin(2 * math.Pi * 0.3 * ti)
	}
	out := signal.Sinc(src, x, src)
	for i := range x {
		assert.InDelta(t, x[i], out[i], 1e-9)
	}
}

func TestResample(t *testing.T) {
	x := make([]float64, 401)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 0.5 * float64(i) / 40)
	}
	same, err := signal.Resample(x, 40, 40)
	require.NoError(t, err)
	assert.Equal(t, x, same)

	down, err := signal.Resample(x, 40, 10)
	require.NoError(t, err)
	require.Len(t, down, 101)
	// A 0.5 Hz tone is far below the 5 Hz cut-off: interior samples survive.
	for i := 20; i < 80; i++ {
		want := math.Sin(2 * math.Pi * 0.5 * float64(i) / 10)
		assert.InDelta(t, want, down[i], 0.02, "sample %d", i)
	}

	_, err = signal.Resample(x, 0, 10)
	assert.ErrorIs(t, err, signal.ErrBadRate)
}
