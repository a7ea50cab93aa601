// SPDX-License-Identifier: MIT

// Package ensemble reads and writes plain-array event files: waveform
// ensembles for the flux computer and per-station arrival sets for the
// orientation estimator. Files are YAML (.yaml, .yml) or JSON (.json),
// chosen by extension. This is an interchange format for already curated
// data, not a seismic container format.
package ensemble
