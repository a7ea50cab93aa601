// SPDX-License-Identifier: MIT

package ensemble

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/seisinv/orientation"
	"github.com/katalvlaran/seisinv/synth"
	"github.com/katalvlaran/seisinv/wavefield"
)

var (
	// ErrFormat indicates an unknown file extension.
	ErrFormat = errors.New("ensemble: unsupported file format")

	// ErrInvalid indicates a structurally invalid file.
	ErrInvalid = errors.New("ensemble: invalid content")
)

// FormatVersion is written into every file.
const FormatVersion = 1

// Window mirrors wavefield.Window with explicit field names on disk.
type Window struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
}

// Event is one 2-component event on disk. Vertical is positive up.
type Event struct {
	ID       string    `yaml:"id" json:"id"`
	P        float64   `yaml:"p" json:"p"`
	Fs       float64   `yaml:"fs" json:"fs"`
	Start    float64   `yaml:"start" json:"start"`
	Radial   []float64 `yaml:"radial,flow" json:"radial"`
	Vertical []float64 `yaml:"vertical,flow" json:"vertical"`
}

// File is a waveform ensemble of one station.
type File struct {
	Version int     `yaml:"version" json:"version"`
	Station string  `yaml:"station,omitempty" json:"station,omitempty"`
	Window  *Window `yaml:"window,omitempty" json:"window,omitempty"`
	Events  []Event `yaml:"events" json:"events"`
}

// Validate checks the per-event shape.
func (f *File) Validate() error {
	if len(f.Events) == 0 {
		return fmt.Errorf("%w: no events", ErrInvalid)
	}
	for i, e := range f.Events {
		if len(e.Radial) == 0 || len(e.Radial) != len(e.Vertical) {
			return fmt.Errorf("%w: event %d (%s): %d radial, %d vertical samples",
				ErrInvalid, i, e.ID, len(e.Radial), len(e.Vertical))
		}
		if !(e.Fs > 0) {
			return fmt.Errorf("%w: event %d (%s): sampling rate %g", ErrInvalid, i, e.ID, e.Fs)
		}
	}
	return nil
}

// WavefieldEvents converts the file to events for FluxComputer.Ingest.
// The slices are copied.
func (f *File) WavefieldEvents() []wavefield.Event {
	out := make([]wavefield.Event, len(f.Events))
	for i, e := range f.Events {
		out[i] = wavefield.Event{
			ID:       e.ID,
			P:        e.P,
			Fs:       e.Fs,
			Start:    e.Start,
			Radial:   append([]float64(nil), e.Radial...),
			Vertical: append([]float64(nil), e.Vertical...),
		}
	}
	return out
}

// Prepared returns the file as an already prepared ensemble, with the
// stored vertical sign [R, −Z]. ok is false when the file carries no window,
// in which case the events are raw and must go through Ingest.
// Prepared files need a common sampling rate and trace length.
func (f *File) Prepared() (ens wavefield.Ensemble, ok bool, err error) {
	if f.Window == nil {
		return wavefield.Ensemble{}, false, nil
	}
	if err := f.Validate(); err != nil {
		return wavefield.Ensemble{}, true, err
	}
	ens = wavefield.Ensemble{
		Fs:     f.Events[0].Fs,
		Window: wavefield.Window{Start: f.Window.Start, End: f.Window.End},
		IDs:    make([]string, len(f.Events)),
		P:      make([]float64, len(f.Events)),
		Data:   make([][2][]float64, len(f.Events)),
	}
	n := len(f.Events[0].Radial)
	for i, e := range f.Events {
		if e.Fs != ens.Fs || len(e.Radial) != n {
			return wavefield.Ensemble{}, true, fmt.Errorf("%w: prepared event %d (%s): %d samples at %g Hz, want %d at %g Hz",
				ErrInvalid, i, e.ID, len(e.Radial), e.Fs, n, ens.Fs)
		}
		negZ := make([]float64, n)
		floats.ScaleTo(negZ, -1, e.Vertical)
		ens.IDs[i] = e.ID
		ens.P[i] = e.P
		ens.Data[i] = [2][]float64{append([]float64(nil), e.Radial...), negZ}
	}
	return ens, true, nil
}

// FromEvents builds a file from raw events.
func FromEvents(station string, events []wavefield.Event) *File {
	f := &File{Version: FormatVersion, Station: station, Events: make([]Event, len(events))}
	for i, e := range events {
		f.Events[i] = Event{ID: e.ID, P: e.P, Fs: e.Fs, Start: e.Start, Radial: e.Radial, Vertical: e.Vertical}
	}
	return f
}

// FromEnsemble builds a file from a prepared ensemble, restoring the
// positive-up vertical sign and recording the ensemble window.
func FromEnsemble(station string, ens wavefield.Ensemble) *File {
	f := FromEvents(station, synth.Events(ens))
	f.Window = &Window{Start: ens.Window.Start, End: ens.Window.End}
	return f
}

// Load reads a waveform ensemble file.
func Load(path string) (*File, error) {
	var f File
	if err := decode(path, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// Save writes f to path in the format implied by the extension.
func Save(path string, f *File) error {
	if f.Version == 0 {
		f.Version = FormatVersion
	}
	return encode(path, f)
}

// ArrivalRecord is one orientation arrival on disk. Records without fs hold
// traces already cut around the onset; records with fs hold raw traces with
// the P onset onset seconds after the first sample.
type ArrivalRecord struct {
	EventID    string    `yaml:"event_id" json:"event_id"`
	Magnitude  float64   `yaml:"magnitude" json:"magnitude"`
	Fs         float64   `yaml:"fs,omitempty" json:"fs,omitempty"`
	Onset      float64   `yaml:"onset,omitempty" json:"onset,omitempty"`
	Radial     []float64 `yaml:"radial,flow" json:"radial"`
	Transverse []float64 `yaml:"transverse,flow" json:"transverse"`
}

// ArrivalFile holds arrivals grouped by station code.
type ArrivalFile struct {
	Version  int                        `yaml:"version" json:"version"`
	Stations map[string][]ArrivalRecord `yaml:"stations" json:"stations"`
}

// ByStation converts the file for orientation.EstimateAll.
func (a *ArrivalFile) ByStation() map[string][]orientation.Arrival {
	out := make(map[string][]orientation.Arrival, len(a.Stations))
	for sta, recs := range a.Stations {
		arr := make([]orientation.Arrival, len(recs))
		for i, r := range recs {
			arr[i] = orientation.Arrival{
				EventID:    r.EventID,
				Magnitude:  r.Magnitude,
				Fs:         r.Fs,
				Onset:      r.Onset,
				Radial:     r.Radial,
				Transverse: r.Transverse,
			}
		}
		out[sta] = arr
	}
	return out
}

// StationCodes returns the station codes in sorted order.
func (a *ArrivalFile) StationCodes() []string {
	s := make([]string, 0, len(a.Stations))
	for k := range a.Stations {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

// LoadArrivals reads an arrival file.
func LoadArrivals(path string) (*ArrivalFile, error) {
	var a ArrivalFile
	if err := decode(path, &a); err != nil {
		return nil, err
	}
	if len(a.Stations) == 0 {
		return nil, fmt.Errorf("%s: %w: no stations", path, ErrInvalid)
	}
	return &a, nil
}

// SaveArrivals writes an arrival file.
func SaveArrivals(path string, a *ArrivalFile) error {
	if a.Version == 0 {
		a.Version = FormatVersion
	}
	return encode(path, a)
}

type codec int

const (
	codecYAML codec = iota
	codecJSON
)

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codecYAML, nil
	case ".json":
		return codecJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
}

func decode(path string, v any) error {
	c, err := codecFor(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	switch c {
	case codecJSON:
		err = json.Unmarshal(data, v)
	default:
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrInvalid, err)
	}
	return nil
}

func encode(path string, v any) error {
	c, err := codecFor(path)
	if err != nil {
		return err
	}
	var data []byte
	switch c {
	case codecJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	default:
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
