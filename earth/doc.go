// SPDX-License-Identifier: MIT

// Package earth describes 1-D layered earth models: the per-layer elastic
// properties consumed by wavefield continuation and the ordered stack of
// layers sitting on top of a mantle half-space.
//
// What is a Model?
//
//	A Model is an ordered list of finite layers (surface first) terminated
//	by a mantle half-space whose thickness is +Inf:
//
//	    surface ──────────────────────────
//	      layer 0   Vp, Vs, ρ, H0
//	    ──────────────────────────────────
//	      layer 1   Vp, Vs, ρ, H1
//	    ──────────────────────────────────
//	      mantle    Vp, Vs, ρ, H = +Inf
//
// The mantle is never a member of Model.Layers; propagation code appends it
// implicitly as the terminal half-space.
//
// Units follow the usual receiver-function conventions: km/s for velocities,
// g/cm³ for density, km for thickness and s/km for ray parameters.
package earth
