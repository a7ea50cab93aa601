// SPDX-License-Identifier: MIT

package wavefield

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/seisinv/earth"
)

// suMode is the index of the upgoing S mode in the (P−, P+, S−, S+) basis.
const suMode = 3

// FluxComputer holds an ingested ensemble in spectral form and evaluates
// the SU energy flux for arbitrary earth models.
//
// After Ingest (or NewFluxComputer) the computer is read-only and Evaluate
// may be called from many goroutines.
type FluxComputer struct {
	opts Options

	ens  Ensemble
	norm [][2][]float64 // peak-|Z| normalized traces

	// two-sided spectra of the normalized traces, [R, Z] per event, and
	// their angular frequencies: w_k for k < nPos, then −w_{nPos−1}…−w_1.
	spectra [][2][]complex128
	w       []float64
	nPos    int
	times   []float64

	plans sync.Pool
}

// New returns an empty computer; call Ingest before Evaluate.
func New(opts ...Option) *FluxComputer {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FluxComputer{opts: o}
}

// NewFluxComputer builds a computer directly from an already prepared
// ensemble, bypassing trace preparation. Component 1 of every event must
// already carry the continuation sign convention (−Z).
//
// Errors: ErrShapeMismatch, ErrNonFinite, ErrDegenerateTrace, ErrBadWindow.
func NewFluxComputer(ens Ensemble, opts ...Option) (*FluxComputer, error) {
	fc := New(opts...)
	if err := fc.load(ens); err != nil {
		return nil, err
	}
	return fc, nil
}

// Ensemble returns the prepared ensemble (shared, must not be modified).
func (fc *FluxComputer) Ensemble() Ensemble { return fc.ens }

// load validates ens and precomputes the normalized spectra.
func (fc *FluxComputer) load(ens Ensemble) error {
	if ens.Len() == 0 {
		return fmt.Errorf("%w: empty ensemble", ErrShapeMismatch)
	}
	if !(ens.Fs > 0) || math.IsInf(ens.Fs, 0) {
		return fmt.Errorf("%w: sampling rate %g", ErrShapeMismatch, ens.Fs)
	}
	if err := ens.Window.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadWindow, err)
	}
	if len(ens.P) != ens.Len() || (len(ens.IDs) != 0 && len(ens.IDs) != ens.Len()) {
		return fmt.Errorf("%w: %d events, %d ray parameters, %d ids",
			ErrShapeMismatch, ens.Len(), len(ens.P), len(ens.IDs))
	}
	n := ens.Samples()
	if n < 2 {
		return fmt.Errorf("%w: %d samples per trace", ErrShapeMismatch, n)
	}
	for e, ev := range ens.Data {
		for c := 0; c < 2; c++ {
			if len(ev[c]) != n {
				return fmt.Errorf("%w: event %d component %d has %d samples, want %d",
					ErrShapeMismatch, e, c, len(ev[c]), n)
			}
			for j, v := range ev[c] {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("%w: %w: event %d component %d sample %d", ErrShapeMismatch, ErrNonFinite, e, c, j)
				}
			}
		}
		if p := ens.P[e]; math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return fmt.Errorf("%w: event %d ray parameter %g", ErrShapeMismatch, e, p)
		}
	}

	fft := fourier.NewFFT(n)
	nPos := n/2 + 1
	norm := make([][2][]float64, ens.Len())
	spectra := make([][2][]complex128, ens.Len())
	for e, ev := range ens.Data {
		peak := floats.Norm(ev[1], math.Inf(1))
		if peak == 0 {
			return fmt.Errorf("%w: event %d", ErrDegenerateTrace, e)
		}
		for c := 0; c < 2; c++ {
			x := make([]float64, n)
			floats.ScaleTo(x, 1/peak, ev[c])
			norm[e][c] = x
			spectra[e][c] = mirror(fft.Coefficients(nil, x))
		}
	}

	w := make([]float64, 2*nPos-1)
	for k := 0; k < nPos; k++ {
		w[k] = 2 * math.Pi * fft.Freq(k) * ens.Fs
	}
	for j := 0; j < nPos-1; j++ {
		w[nPos+j] = -w[nPos-1-j]
	}

	fc.ens = ens
	fc.norm = norm
	fc.spectra = spectra
	fc.w = w
	fc.nPos = nPos
	fc.times = make([]float64, n)
	floats.Span(fc.times, ens.Window.Start, ens.Window.End)
	fc.plans = sync.Pool{New: func() any { return fourier.NewFFT(n) }}
	return nil
}

// mirror extends a one-sided spectrum (length F) to the two-sided layout
// [c_0 … c_{F−1}, conj(c_{F−1}) … conj(c_1)] of length 2F−1.
func mirror(c []complex128) []complex128 {
	f := len(c)
	full := make([]complex128, 2*f-1)
	copy(full, c)
	for j := 0; j < f-1; j++ {
		full[f+j] = cmplx.Conj(c[f-1-j])
	}
	return full
}

// Evaluate computes the SU energy flux of the ingested ensemble for model.
//
// Steps: the normalized two-sided spectra are stacked with zero traction,
// propagated through model.Layers, decomposed by the mantle Minv and brought
// back to the time domain from the non-negative frequencies. The upgoing S
// component is squared and summed over the flux window and scaled by
// N_su = dt·ρ_m·Vs_m²·qb_m for each event; Flux.Mean averages the events.
//
// Complexity: O(E·(L·K + n log n)) time for E events, L layers, K = n
// two-sided frequencies and n samples; O(E·K) memory for the propagated
// field, plus O(E·n) when the mantle field is kept.
//
// Errors: ErrNotIngested; ErrInvalidModel for an invalid model, a singular
// mode matrix, or a mantle in which S is evanescent for some event;
// ErrBadWindow when the flux window is not inside the ingested window.
func (fc *FluxComputer) Evaluate(model earth.Model, opts ...EvalOption) (Flux, error) {
	if fc.spectra == nil {
		return Flux{}, ErrNotIngested
	}
	eo := evalOptions{fluxWindow: DefaultFluxWindow, keepMantle: true}
	for _, opt := range opts {
		opt(&eo)
	}
	fw := eo.fluxWindow
	if err := fw.Validate(); err != nil {
		return Flux{}, fmt.Errorf("%w: %v", ErrBadWindow, err)
	}
	if fw.Start < fc.ens.Window.Start || fw.End > fc.ens.Window.End {
		return Flux{}, fmt.Errorf("%w: flux window %v outside %v", ErrBadWindow, fw, fc.ens.Window)
	}
	if err := model.Validate(); err != nil {
		return Flux{}, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}

	mantle := model.Mantle
	p := fc.ens.P
	nsu := make([]float64, len(p))
	dt := 1 / fc.ens.Fs
	for e, pe := range p {
		qb2 := 1/(mantle.Vs*mantle.Vs) - pe*pe
		if !(qb2 > 0) {
			return Flux{}, fmt.Errorf("%w: S wave evanescent in mantle for event %d (p=%g)", ErrInvalidModel, e, pe)
		}
		nsu[e] = dt * mantle.Mu() * math.Sqrt(qb2)
	}
	mm, err := ModeMatrices(mantle, p)
	if err != nil {
		return Flux{}, fmt.Errorf("mantle: %w", err)
	}

	k := len(fc.w)
	fz := newField(len(p), k)
	for e := range fz {
		copy(fz[e][0], fc.spectra[e][0])
		copy(fz[e][1], fc.spectra[e][1])
	}
	fvm, err := Propagate(fz, fc.w, model.Layers, p)
	if err != nil {
		return Flux{}, err
	}

	i0, i1 := windowSpan(fc.times, fw)
	n := fc.ens.Samples()
	scale := 1 / float64(n)

	fft := fc.plans.Get().(*fourier.FFT)
	defer fc.plans.Put(fft)

	out := Flux{PerEvent: make([]float64, len(p))}
	if eo.keepMantle {
		out.Mantle = make([][4][]float64, len(p))
	}
	var (
		modes [4][]complex128
		phys  [4][]complex128
		ts    = make([]float64, n)
	)
	for c := 0; c < 4; c++ {
		modes[c] = make([]complex128, fc.nPos)
	}
	for e := range fvm {
		for c := 0; c < 4; c++ {
			phys[c] = fvm[e][c][:fc.nPos]
		}
		mm.Minv[e].apply(&modes, &phys)

		for c := 0; c < 4; c++ {
			if c != suMode && !eo.keepMantle {
				continue
			}
			fft.Sequence(ts, modes[c])
			floats.Scale(scale, ts)
			if c == suMode {
				var s float64
				for _, v := range ts[i0:i1] {
					s += v * v
				}
				out.PerEvent[e] = nsu[e] * s
			}
			if eo.keepMantle {
				out.Mantle[e][c] = append([]float64(nil), ts...)
			}
		}
	}
	out.Mean = floats.Sum(out.PerEvent) / float64(len(out.PerEvent))
	return out, nil
}

// windowSpan returns the half-open index range of the sorted times that lie
// inside the closed window w.
func windowSpan(times []float64, w Window) (int, int) {
	i0 := 0
	for i0 < len(times) && times[i0] < w.Start {
		i0++
	}
	i1 := i0
	for i1 < len(times) && times[i1] <= w.End {
		i1++
	}
	return i0, i1
}
