// SPDX-License-Identifier: MIT

package wavefield

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/seisinv/signal"
)

// ErrWindowNotCovered indicates an event whose traces do not span the
// requested time window after resampling.
var ErrWindowNotCovered = signal.ErrWindowNotCovered

// Ingest prepares events for repeated evaluation and replaces any
// previously ingested data.
//
// All events are validated before any spectral work: both components must
// be non-empty, of equal length and finite; rates and onset offsets must be
// finite and positive (rate). Each trace is then, in order:
//  1. resampled to fs when its rate differs (zero-phase 2-corner low-pass
//     at fs/2 followed by Lanczos interpolation, a=10);
//  2. trimmed to timeWindow about the onset;
//  3. cut to cutWindow (clipped to timeWindow), linearly detrended, tapered
//     and sinc-interpolated back onto the timeWindow time base.
//
// Once every event is prepared and loaded, the prepared traces replace the
// Radial/Vertical buffers of events. On error events are left untouched and
// the previously ingested data, if any, stays in use.
// The stored ensemble holds [R, −Z] per event.
//
// Complexity: O(E·n·a) for the Lanczos resampling of E events of n samples
// (a = 10), O(E·c·n) for the sinc reconstruction of c cut samples, and
// O(E·n log n) for the spectra.
//
// Ingest must not run concurrently with Evaluate on the same computer.
func (fc *FluxComputer) Ingest(events []Event, fs float64, timeWindow, cutWindow Window) error {
	if len(events) == 0 {
		return fmt.Errorf("%w: no events", ErrShapeMismatch)
	}
	if !(fs > 0) || math.IsInf(fs, 0) {
		return fmt.Errorf("%w: processing rate %g", ErrShapeMismatch, fs)
	}
	if err := timeWindow.Validate(); err != nil {
		return fmt.Errorf("%w: time window: %v", ErrBadWindow, err)
	}
	if err := cutWindow.Validate(); err != nil {
		return fmt.Errorf("%w: cut window: %v", ErrBadWindow, err)
	}
	cut := Window{Start: math.Max(cutWindow.Start, timeWindow.Start), End: math.Min(cutWindow.End, timeWindow.End)}
	if cut.End <= cut.Start {
		return fmt.Errorf("%w: cut window %v outside time window %v", ErrBadWindow, cutWindow, timeWindow)
	}
	for i := range events {
		if err := validateEvent(&events[i]); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, events[i].ID, err)
		}
	}

	n := int(math.Round(timeWindow.Duration()*fs)) + 1
	ens := Ensemble{
		Fs:     fs,
		Window: timeWindow,
		IDs:    make([]string, len(events)),
		P:      make([]float64, len(events)),
		Data:   make([][2][]float64, len(events)),
	}
	type prepared struct {
		r, z  []float64
		start float64
	}
	out := make([]prepared, len(events))
	log := fc.opts.Logger
	for i := range events {
		ev := &events[i]
		r, z, start, err := prepareEvent(ev, fs, n, timeWindow, cut, fc.opts.TaperFraction)
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.ID, err)
		}
		log.Debug("event prepared",
			zap.String("event", ev.ID),
			zap.Float64("p", ev.P),
			zap.Float64("fs_in", ev.Fs),
			zap.Bool("resampled", ev.Fs != fs),
			zap.Int("samples", n))
		out[i] = prepared{r: r, z: z, start: start}

		negZ := make([]float64, n)
		for j, v := range z {
			negZ[j] = -v
		}
		rc := make([]float64, n)
		copy(rc, r)
		ens.IDs[i] = ev.ID
		ens.P[i] = ev.P
		ens.Data[i] = [2][]float64{rc, negZ}
	}
	if err := fc.load(ens); err != nil {
		return err
	}
	for i, pr := range out {
		ev := &events[i]
		ev.Radial, ev.Vertical, ev.Fs, ev.Start = pr.r, pr.z, fs, pr.start
	}
	return nil
}

func validateEvent(ev *Event) error {
	switch {
	case len(ev.Radial) == 0 || len(ev.Vertical) == 0:
		return fmt.Errorf("%w: empty component", ErrShapeMismatch)
	case len(ev.Radial) != len(ev.Vertical):
		return fmt.Errorf("%w: R has %d samples, Z has %d", ErrShapeMismatch, len(ev.Radial), len(ev.Vertical))
	case !(ev.Fs > 0) || math.IsInf(ev.Fs, 0):
		return fmt.Errorf("%w: sampling rate %g", ErrShapeMismatch, ev.Fs)
	case math.IsNaN(ev.Start) || math.IsInf(ev.Start, 0):
		return fmt.Errorf("%w: start offset %g", ErrShapeMismatch, ev.Start)
	case math.IsNaN(ev.P) || math.IsInf(ev.P, 0) || ev.P < 0:
		return fmt.Errorf("%w: ray parameter %g", ErrShapeMismatch, ev.P)
	}
	for _, tr := range [2][]float64{ev.Radial, ev.Vertical} {
		for j, v := range tr {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %w: sample %d", ErrShapeMismatch, ErrNonFinite, j)
			}
		}
	}
	return nil
}

// prepareEvent returns the prepared R and Z traces (n samples each) and the
// onset-relative time of their first sample.
func prepareEvent(ev *Event, fs float64, n int, tw, cut Window, taper float64) ([]float64, []float64, float64, error) {
	var out [2][]float64
	var start float64
	for c, tr := range [2][]float64{ev.Radial, ev.Vertical} {
		x := tr
		if ev.Fs != fs {
			rs, err := signal.Resample(tr, ev.Fs, fs)
			if err != nil {
				return nil, nil, 0, err
			}
			x = rs
		}

		i0, _, err := signal.TrimIndex(len(x), ev.Start, fs, tw)
		if err != nil {
			return nil, nil, 0, err
		}
		if i0+n > len(x) {
			return nil, nil, 0, fmt.Errorf("%w: need %d samples from index %d, have %d",
				ErrWindowNotCovered, n, i0, len(x))
		}
		trimmed := x[i0 : i0+n]
		start = ev.Start + float64(i0)/fs
		times := signal.Times(n, start, fs)

		c0, c1 := cutIndex(n, start, fs, cut)
		seg := make([]float64, c1-c0)
		copy(seg, trimmed[c0:c1])
		signal.DetrendInPlace(seg)
		signal.TaperInPlace(seg, taper)
		out[c] = signal.Sinc(times[c0:c1], seg, times)
	}
	return out[0], out[1], start, nil
}

// cutIndex snaps cut onto the n-sample time base starting at start,
// clamping to the available samples. The range is never empty.
func cutIndex(n int, start, fs float64, cut Window) (int, int) {
	c0 := int(math.Round((cut.Start - start) * fs))
	c1 := int(math.Round((cut.End-start)*fs)) + 1
	c0 = max(0, min(c0, n-1))
	c1 = max(c0+1, min(c1, n))
	return c0, c1
}
