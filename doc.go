// SPDX-License-Identifier: MIT

// Package seisinv estimates crustal layer structure beneath a seismic
// station from teleseismic P arrivals by wavefield continuation.
//
// What is inside?
//
//	A layered-earth toolkit built around one idea: under the true model,
//	continuing the recorded (R, Z) surface motion down to the top of the
//	mantle leaves no upgoing S wave. The mean SU energy is therefore an
//	objective whose minimum is the crust.
//		• earth/       - layer properties and layered models
//		• wavefield/   - mode matrices, layer propagation, SU flux computer
//		• signal/      - detrend, taper, low-pass, Lanczos/sinc resampling
//		• mcmc/        - clustering Metropolis-Hastings minimizer, chains, polish
//		• sweep/       - bounded worker pool and parameter grid sweeps
//		• orientation/ - P-polarization station orientation statistics
//		• synth/       - analytic plane-wave ensembles for a known model
//		• ensemble/    - YAML/JSON ensemble and arrival files
//		• config/, logging/, metrics/ - run configuration, zap, Prometheus
//		• cmd/seisinv  - the command line tool
//
// The model stack, surface down:
//
//	  free surface ──────────────  R, Z recorded here (z = 0)
//	  layer 0   Vp, Vs, ρ, H0
//	  layer 1   Vp, Vs, ρ, H1
//	  mantle    Vp, Vs, ρ, ∞      SU energy measured at its top
//
// Units: km, km/s, g/cm³, s, s/km (ray parameter), Hz.
//
//	go install github.com/katalvlaran/seisinv/cmd/seisinv@latest
package seisinv
