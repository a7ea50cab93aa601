// SPDX-License-Identifier: MIT

// Package synth generates analytic plane-wave ensembles for a known earth
// model. The vertical component of every event is constructed in the
// frequency domain so that, continued down through the true model, the
// upgoing S wave at the top of the mantle vanishes identically; any other
// model leaves residual SU energy. The ensembles serve as regression
// fixtures for the flux computer and as a demonstration input for the CLI.
package synth
