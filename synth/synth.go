// SPDX-License-Identifier: MIT

package synth

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/seisinv/earth"
	"github.com/katalvlaran/seisinv/wavefield"
)

// ErrBadConfig indicates an unusable generator configuration.
var ErrBadConfig = errors.New("synth: invalid configuration")

// Config describes the synthetic acquisition.
type Config struct {
	Events int     // number of events, ray parameters spread evenly over [PMin, PMax]
	PMin   float64 // s/km
	PMax   float64 // s/km
	Fs     float64 // Hz
	Window wavefield.Window
	Peak   float64 // Ricker peak frequency, Hz
}

// DefaultConfig is 10 events with p in [0.04, 0.08] s/km, a 0.5 Hz Ricker
// wavelet sampled at 10 Hz over the default ingest window.
func DefaultConfig() Config {
	return Config{
		Events: 10,
		PMin:   0.04,
		PMax:   0.08,
		Fs:     10,
		Window: wavefield.DefaultTimeWindow,
		Peak:   0.5,
	}
}

func (c Config) validate() error {
	switch {
	case c.Events < 1:
		return fmt.Errorf("%w: %d events", ErrBadConfig, c.Events)
	case !(c.PMin >= 0) || !(c.PMax >= c.PMin):
		return fmt.Errorf("%w: ray parameter range [%g, %g]", ErrBadConfig, c.PMin, c.PMax)
	case !(c.Fs > 0) || math.IsInf(c.Fs, 0):
		return fmt.Errorf("%w: sampling rate %g", ErrBadConfig, c.Fs)
	case !(c.Peak > 0) || c.Peak >= c.Fs/2:
		return fmt.Errorf("%w: peak frequency %g", ErrBadConfig, c.Peak)
	}
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	return nil
}

// Ricker returns the Ricker wavelet of peak frequency f centered at t0,
// sampled at times t.
func Ricker(t []float64, f, t0 float64) []float64 {
	out := make([]float64, len(t))
	for i, ti := range t {
		a := math.Pi * f * (ti - t0)
		a *= a
		out[i] = (1 - 2*a) * math.Exp(-a)
	}
	return out
}

// PlaneWave builds a prepared ensemble (continuation sign convention,
// component 1 = −Z) whose SU flux vanishes for model.
//
// The radial trace is a Ricker wavelet at the onset. For each non-negative
// frequency ω, with S(ω) the row of the mantle Minv acting on the field
// continued through model.Layers, the vertical spectrum is chosen as
// Z(ω) = −S_R(ω)/S_Z(ω)·R(ω). Frequencies where S_Z vanishes, and the
// Nyquist bin of an even-length trace, carry no energy.
func PlaneWave(model earth.Model, cfg Config) (wavefield.Ensemble, error) {
	if err := cfg.validate(); err != nil {
		return wavefield.Ensemble{}, err
	}
	if err := model.Validate(); err != nil {
		return wavefield.Ensemble{}, fmt.Errorf("%w: %v", wavefield.ErrInvalidModel, err)
	}

	n := int(math.Round(cfg.Window.Duration()*cfg.Fs)) + 1
	times := make([]float64, n)
	floats.Span(times, cfg.Window.Start, cfg.Window.End)
	fs := float64(n-1) / cfg.Window.Duration()

	p := make([]float64, cfg.Events)
	if cfg.Events == 1 {
		p[0] = cfg.PMin
	} else {
		floats.Span(p, cfg.PMin, cfg.PMax)
	}

	fft := fourier.NewFFT(n)
	nPos := n/2 + 1
	w := make([]float64, nPos)
	for k := range w {
		w[k] = 2 * math.Pi * fft.Freq(k) * fs
	}

	rs := fft.Coefficients(nil, Ricker(times, cfg.Peak, 0))
	if n%2 == 0 {
		rs[nPos-1] = 0
	}
	radial := fft.Sequence(nil, rs)
	floats.Scale(1/float64(n), radial)

	// Unit radial and unit vertical excitation at every frequency.
	unit := make([][4][]complex128, 2*cfg.Events)
	pp := make([]float64, 2*cfg.Events)
	for e := 0; e < cfg.Events; e++ {
		for c := 0; c < 2; c++ {
			var f [4][]complex128
			for r := 0; r < 4; r++ {
				f[r] = make([]complex128, nPos)
			}
			for k := range f[c] {
				f[c][k] = 1
			}
			unit[2*e+c] = f
			pp[2*e+c] = p[e]
		}
	}
	base, err := wavefield.Propagate(unit, w, model.Layers, pp)
	if err != nil {
		return wavefield.Ensemble{}, err
	}
	mm, err := wavefield.ModeMatrices(model.Mantle, p)
	if err != nil {
		return wavefield.Ensemble{}, fmt.Errorf("mantle: %w", err)
	}

	ens := wavefield.Ensemble{
		Fs:     fs,
		Window: cfg.Window,
		IDs:    make([]string, cfg.Events),
		P:      p,
		Data:   make([][2][]float64, cfg.Events),
	}
	zs := make([]complex128, nPos)
	for e := 0; e < cfg.Events; e++ {
		row := mm.Minv[e][3]
		for k := 0; k < nPos; k++ {
			var sr, sz complex128
			for j := 0; j < 4; j++ {
				sr += row[j] * base[2*e][j][k]
				sz += row[j] * base[2*e+1][j][k]
			}
			if cmplx.Abs(sz) < 1e-300 {
				zs[k] = 0
				continue
			}
			zs[k] = -sr / sz * rs[k]
		}
		zs[0] = complex(real(zs[0]), 0)
		if n%2 == 0 {
			zs[nPos-1] = 0
		}
		z := fft.Sequence(nil, zs)
		floats.Scale(1/float64(n), z)

		r := make([]float64, n)
		copy(r, radial)
		ens.IDs[e] = "synth-" + strconv.Itoa(e)
		ens.Data[e] = [2][]float64{r, z}
	}
	return ens, nil
}

// Events converts a prepared ensemble back to raw events in the source
// sign convention (Vertical = −component 1), suitable for Ingest or for
// writing to an ensemble file.
func Events(ens wavefield.Ensemble) []wavefield.Event {
	out := make([]wavefield.Event, ens.Len())
	for e, d := range ens.Data {
		z := make([]float64, len(d[1]))
		floats.ScaleTo(z, -1, d[1])
		r := make([]float64, len(d[0]))
		copy(r, d[0])
		id := strconv.Itoa(e)
		if e < len(ens.IDs) {
			id = ens.IDs[e]
		}
		out[e] = wavefield.Event{
			ID:       id,
			P:        ens.P[e],
			Fs:       ens.Fs,
			Start:    ens.Window.Start,
			Radial:   r,
			Vertical: z,
		}
	}
	return out
}
