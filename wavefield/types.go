// SPDX-License-Identifier: MIT

package wavefield

import "github.com/katalvlaran/seisinv/signal"

// Window is an onset-relative time interval in seconds.
type Window = signal.Window

// Default windows (seconds relative to the P onset).
var (
	// DefaultTimeWindow is the extent of data kept by Ingest.
	DefaultTimeWindow = Window{Start: -20, End: 50}

	// DefaultCutWindow selects the central wavelet during Ingest.
	DefaultCutWindow = Window{Start: -5, End: 30}

	// DefaultFluxWindow is the energy integration window used by Evaluate.
	DefaultFluxWindow = Window{Start: -10, End: 20}
)

// DefaultTaperFraction is the per-end cosine taper applied to the cut wavelet.
const DefaultTaperFraction = 0.10

// Event is one curated 2-component arrival supplied to Ingest.
//
// Fields:
//   - ID       - event identifier, carried through for diagnostics.
//   - P        - ray parameter, s/km.
//   - Fs       - sampling rate of Radial and Vertical, Hz.
//   - Start    - time of sample 0 relative to the P onset, s (usually < 0).
//   - Radial   - radial displacement trace.
//   - Vertical - vertical displacement trace (positive up in the source frame).
//
// Ingest replaces Radial, Vertical, Fs and Start with the prepared traces.
type Event struct {
	ID       string
	P        float64
	Fs       float64
	Start    float64
	Radial   []float64
	Vertical []float64
}

// Ensemble is a prepared, uniformly shaped batch of events.
//
// Fields:
//   - Fs     - common sampling rate, Hz.
//   - Window - onset-relative span of the traces; sample i lies at
//     Window.Start + i/Fs and the last sample at Window.End.
//   - IDs    - event identifiers; may be empty.
//   - P      - ray parameter of each event, s/km.
//   - Data   - Data[event][component][sample] with component 0 = radial and
//     1 = vertical, already sign-flipped to the continuation convention (−Z).
type Ensemble struct {
	Fs     float64
	Window Window
	IDs    []string
	P      []float64
	Data   [][2][]float64
}

// Len returns the number of events.
func (e Ensemble) Len() int { return len(e.Data) }

// Samples returns the per-trace sample count, or 0 for an empty ensemble.
func (e Ensemble) Samples() int {
	if len(e.Data) == 0 {
		return 0
	}
	return len(e.Data[0][0])
}

// Flux is the result of one Evaluate call.
//
//   - Mean     - mean SU energy over events (the objective value).
//   - PerEvent - SU energy of each event, same order as ingested.
//   - Mantle   - time-domain mode amplitudes at the top of the mantle,
//     Mantle[event][mode][sample]; mode order is (P−, P+, S−, S+) as in Q.
type Flux struct {
	Mean     float64
	PerEvent []float64
	Mantle   [][4][]float64
}
