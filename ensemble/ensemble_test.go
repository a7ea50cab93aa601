// SPDX-License-Identifier: MIT

package ensemble_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seisinv/earth"
	"github.com/katalvlaran/seisinv/ensemble"
	"github.com/katalvlaran/seisinv/synth"
	"github.com/katalvlaran/seisinv/wavefield"
)

func synthetic(t *testing.T) wavefield.Ensemble {
	t.Helper()
	model := earth.Model{
		Mantle: earth.LayerProps{Vp: 8.0, Vs: 4.5, Rho: 3.3, H: math.Inf(1)},
		Layers: []earth.LayerProps{{Vp: 6.4, Vs: 3.7, Rho: 2.7, H: 35}},
	}
	cfg := synth.DefaultConfig()
	cfg.Events = 3
	ens, err := synth.PlaneWave(model, cfg)
	require.NoError(t, err)
	return ens
}

func TestSaveLoad(t *testing.T) {
	ens := synthetic(t)
	want := synth.Events(ens)

	for _, name := range []string{"ens.yaml", "ens.yml", "ens.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, ensemble.Save(path, ensemble.FromEnsemble("STA1", ens)))

			f, err := ensemble.Load(path)
			require.NoError(t, err)
			assert.Equal(t, ensemble.FormatVersion, f.Version)
			assert.Equal(t, "STA1", f.Station)
			require.NotNil(t, f.Window)
			assert.Equal(t, ens.Window.Start, f.Window.Start)
			assert.Equal(t, ens.Window.End, f.Window.End)

			got := f.WavefieldEvents()
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].ID, got[i].ID)
				assert.Equal(t, want[i].P, got[i].P)
				assert.InDeltaSlice(t, want[i].Radial, got[i].Radial, 1e-12)
				assert.InDeltaSlice(t, want[i].Vertical, got[i].Vertical, 1e-12)
			}
		})
	}
}

// TestLoad_Ingest feeds a loaded file straight into the flux computer.
func TestLoad_Ingest(t *testing.T) {
	ens := synthetic(t)
	path := filepath.Join(t.TempDir(), "ens.json")
	require.NoError(t, ensemble.Save(path, ensemble.FromEnsemble("", ens)))
	f, err := ensemble.Load(path)
	require.NoError(t, err)

	fc := wavefield.New()
	require.NoError(t, fc.Ingest(f.WavefieldEvents(), ens.Fs, ens.Window, wavefield.DefaultCutWindow))
	assert.Equal(t, 3, fc.Ensemble().Len())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ensemble.Load(filepath.Join(dir, "ens.txt"))
	assert.ErrorIs(t, err, ensemble.ErrFormat)

	_, err = ensemble.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = ensemble.Load(bad)
	assert.ErrorIs(t, err, ensemble.ErrInvalid)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("version: 1\nevents: []\n"), 0o644))
	_, err = ensemble.Load(empty)
	assert.ErrorIs(t, err, ensemble.ErrInvalid)

	short := filepath.Join(dir, "short.yaml")
	require.NoError(t, os.WriteFile(short, []byte(`version: 1
events:
  - id: a
    p: 0.06
    fs: 10
    start: 0
    radial: [1, 2, 3]
    vertical: [1, 2]
`), 0o644))
	_, err = ensemble.Load(short)
	assert.ErrorIs(t, err, ensemble.ErrInvalid)
}

func TestArrivals(t *testing.T) {
	a := &ensemble.ArrivalFile{Stations: map[string][]ensemble.ArrivalRecord{
		"B": {{EventID: "e1", Magnitude: 6, Radial: []float64{1, 2}, Transverse: []float64{0, 1}}},
		"A": {{EventID: "e2", Magnitude: 5.8, Fs: 40, Onset: 10, Radial: []float64{3}, Transverse: []float64{4}}},
	}}
	path := filepath.Join(t.TempDir(), "arr.yaml")
	require.NoError(t, ensemble.SaveArrivals(path, a))

	got, err := ensemble.LoadArrivals(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got.StationCodes())

	by := got.ByStation()
	require.Len(t, by["B"], 1)
	assert.Equal(t, "e1", by["B"][0].EventID)
	assert.Equal(t, []float64{0, 1}, by["B"][0].Transverse)
	assert.Zero(t, by["B"][0].Fs, "cut arrivals carry no rate")
	assert.Equal(t, 40.0, by["A"][0].Fs)
	assert.Equal(t, 10.0, by["A"][0].Onset)

	empty := filepath.Join(t.TempDir(), "none.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"version":1}`), 0o644))
	_, err = ensemble.LoadArrivals(empty)
	assert.ErrorIs(t, err, ensemble.ErrInvalid)
}

func TestPrepared(t *testing.T) {
	ens := synthetic(t)
	path := filepath.Join(t.TempDir(), "prepared.yaml")
	require.NoError(t, ensemble.Save(path, ensemble.FromEnsemble("STA1", ens)))
	f, err := ensemble.Load(path)
	require.NoError(t, err)

	got, ok, err := f.Prepared()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ens.Fs, got.Fs)
	assert.Equal(t, ens.Window, got.Window)
	assert.Equal(t, ens.IDs, got.IDs)
	for i := range ens.Data {
		assert.InDeltaSlice(t, ens.Data[i][0], got.Data[i][0], 1e-12)
		assert.InDeltaSlice(t, ens.Data[i][1], got.Data[i][1], 1e-12)
	}

	raw := ensemble.FromEvents("STA1", synth.Events(ens))
	_, ok, err = raw.Prepared()
	require.NoError(t, err)
	assert.False(t, ok, "raw events carry no window")

	f.Events[1].Radial = f.Events[1].Radial[:10]
	f.Events[1].Vertical = f.Events[1].Vertical[:10]
	_, _, err = f.Prepared()
	assert.ErrorIs(t, err, ensemble.ErrInvalid)
}
