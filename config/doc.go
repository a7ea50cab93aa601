// SPDX-License-Identifier: MIT

// Package config loads the run configuration of the seisinv tool.
//
// Values resolve with precedence flags > environment (SEISINV_ prefix,
// dots replaced by underscores, e.g. SEISINV_MCMC_BURN_IN) > YAML file >
// defaults. Defaults reproduce the single-crust reference setup: an
// 8.0/4.5/3.3 mantle under one layer with Vp 6.4 km/s and density
// 2.7 g/cm³, searched over H ∈ [25, 45] km and Vp/Vs ∈ [1.5, 2.1].
package config
