// SPDX-License-Identifier: MIT

package orientation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/soniakeys/unit"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/seisinv/signal"
)

var (
	// ErrLengthMismatch indicates radial and transverse windows of
	// different length.
	ErrLengthMismatch = errors.New("orientation: radial and transverse lengths differ")

	// ErrDegenerate indicates a window without usable particle motion
	// (too short, or zero variance).
	ErrDegenerate = errors.New("orientation: degenerate particle motion")

	// ErrWindow indicates an arrival window outside the trace.
	ErrWindow = errors.New("orientation: window outside trace")
)

// Status of a station estimate.
type Status int

const (
	// StatusOK means a numeric estimate is reported.
	StatusOK Status = iota
	// StatusInsufficientData means fewer than the minimum number of
	// qualifying events; no numeric estimate is reported.
	StatusInsufficientData
)

// String returns "ok" or "insufficient data".
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInsufficientData:
		return "insufficient data"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Arrival is one curated event at a station.
//
// With Fs zero, Radial and Transverse are already cut around the P onset.
// Otherwise they are raw traces sampled at Fs with the onset Onset seconds
// after the first sample, and Estimate runs Prepare on them first.
type Arrival struct {
	EventID    string
	Magnitude  float64
	Fs         float64
	Onset      float64
	Radial     []float64
	Transverse []float64
}

// StationResult summarizes the residuals of one station, in degrees.
// Mean, StdDev and StdErr are only meaningful when Status is StatusOK.
type StationResult struct {
	Station   string
	Status    Status
	N         int
	Mean      float64
	StdDev    float64 // population standard deviation
	StdErr    float64 // StdDev/√N
	Residuals []float64
	Skipped   int
}

// Correction returns the mean residual as an angle.
func (r StationResult) Correction() unit.Angle { return unit.AngleFromDeg(r.Mean) }

// String formats the result as a one-line report.
func (r StationResult) String() string {
	if r.Status != StatusOK {
		return fmt.Sprintf("%s: insufficient data (N = %d)", r.Station, r.N)
	}
	return fmt.Sprintf("%s: %.4f° ± %.4f°, stddev %.4f° (N = %d)", r.Station, r.Mean, r.StdErr, r.StdDev, r.N)
}

// Fold maps an angle in degrees into (−90, 90] by adding or subtracting
// 180° as often as needed.
func Fold(deg float64) float64 {
	for deg <= -90 {
		deg += 180
	}
	for deg > 90 {
		deg -= 180
	}
	return deg
}

// Residual returns the folded angle (degrees) of the dominant polarization
// of the (R, T) particle motion, measured from the radial axis toward the
// transverse axis, and the share of variance it explains.
func Residual(radial, transverse []float64) (deg, ratio float64, err error) {
	if len(radial) != len(transverse) {
		return 0, 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(radial), len(transverse))
	}
	n := len(radial)
	if n < 2 {
		return 0, 0, fmt.Errorf("%w: %d samples", ErrDegenerate, n)
	}
	data := mat.NewDense(n, 2, nil)
	data.SetCol(0, radial)
	data.SetCol(1, transverse)

	var pc stat.PC
	if !pc.PrincipalComponents(data, nil) {
		return 0, 0, fmt.Errorf("%w: decomposition failed", ErrDegenerate)
	}
	vars := pc.VarsTo(nil)
	total := vars[0] + vars[1]
	if !(total > 0) {
		return 0, 0, fmt.Errorf("%w: zero variance", ErrDegenerate)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	a := unit.Angle(math.Atan2(vecs.At(1, 0), vecs.At(0, 0)))
	return Fold(a.Deg()), vars[0] / total, nil
}

// Estimate computes the orientation statistics of one station.
//
// An arrival qualifies when its magnitude reaches MinMagnitude (NaN never
// does), it survives Prepare when raw, its two
// components have equal length and its dominant component explains at
// least MinVarianceRatio of the variance. With fewer than MinEvents
// qualifying arrivals the status is StatusInsufficientData.
func Estimate(station string, arrivals []Arrival, opts ...Option) StationResult {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger.With(zap.String("station", station))

	res := StationResult{Station: station}
	for _, a := range arrivals {
		if !(a.Magnitude >= o.MinMagnitude) {
			res.Skipped++
			log.Debug("arrival skipped", zap.String("event", a.EventID), zap.String("reason", "magnitude"))
			continue
		}
		cut, err := prepare(a, o)
		if err != nil {
			res.Skipped++
			log.Debug("arrival skipped", zap.String("event", a.EventID), zap.Error(err))
			continue
		}
		deg, ratio, err := Residual(cut.Radial, cut.Transverse)
		if err != nil {
			res.Skipped++
			log.Debug("arrival skipped", zap.String("event", a.EventID), zap.Error(err))
			continue
		}
		if ratio < o.MinVarianceRatio {
			res.Skipped++
			log.Debug("arrival skipped", zap.String("event", a.EventID),
				zap.String("reason", "polarization"), zap.Float64("ratio", ratio))
			continue
		}
		res.Residuals = append(res.Residuals, deg)
	}
	sort.Float64s(res.Residuals)
	res.N = len(res.Residuals)

	if res.N < o.MinEvents {
		res.Status = StatusInsufficientData
		log.Info("insufficient data", zap.Int("n", res.N))
		return res
	}
	res.Mean, res.StdDev = stat.PopMeanStdDev(res.Residuals, nil)
	res.StdErr = res.StdDev / math.Sqrt(float64(res.N))
	log.Info("orientation estimated",
		zap.Float64("mean_deg", res.Mean),
		zap.Float64("stderr_deg", res.StdErr),
		zap.Float64("stddev_deg", res.StdDev),
		zap.Int("n", res.N))
	return res
}

// EstimateAll estimates every station and returns the results ordered by
// station code.
func EstimateAll(byStation map[string][]Arrival, opts ...Option) []StationResult {
	stations := make([]string, 0, len(byStation))
	for s := range byStation {
		stations = append(stations, s)
	}
	sort.Strings(stations)
	out := make([]StationResult, len(stations))
	for i, s := range stations {
		out[i] = Estimate(s, byStation[s], opts...)
	}
	return out
}

// Window copies the samples of trace from before seconds ahead of the onset
// sample to after seconds past it (both inclusive), at sampling rate fs.
// The default arrival window is before = 1, after = 3.
func Window(trace []float64, fs float64, onset int, before, after float64) ([]float64, error) {
	if !(fs > 0) || math.IsInf(fs, 0) || before < 0 || after < 0 || before+after == 0 {
		return nil, fmt.Errorf("%w: fs=%g before=%g after=%g", ErrWindow, fs, before, after)
	}
	start := -float64(onset) / fs
	out, _, err := signal.Trim(trace, start, fs, signal.Window{Start: -before, End: after})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindow, err)
	}
	return out, nil
}
