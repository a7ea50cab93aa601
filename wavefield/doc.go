// SPDX-License-Identifier: MIT

// Package wavefield computes the upgoing S-wave energy flux ("SU flux") at
// the top of the mantle for an ensemble of teleseismic P arrivals recorded
// at one station, by downward continuation of the surface wavefield through
// a 1-D layered earth model.
//
// 🚀 How it works
//
//	For each event the radial and vertical surface traces are normalized,
//	transformed to the frequency domain and stacked with zero traction into
//	a 4-component vector (u_R, u_Z, τ_R, τ_Z). Each layer of the model then
//	decomposes the field into up/down P and S modes (Minv), applies the
//	vertical phase delay exp(i·H·q·ω) and recomposes it (M). At the base of
//	the stack the field is decomposed in the mantle mode basis; the upgoing
//	S component, integrated over the flux window, is the SU energy. A correct
//	earth model leaves almost no upgoing S energy below the crust.
//
// ⚙️ Usage
//
//	fc := wavefield.New()
//	if err := fc.Ingest(events, 10, wavefield.DefaultTimeWindow, wavefield.DefaultCutWindow); err != nil {
//		return err
//	}
//	flux, err := fc.Evaluate(model)
//
// Ingest is expensive and done once; Evaluate is cheap, deterministic and
// safe to call from many goroutines.
//
// Reference: Tao, Liu, Ning & Niu (2014), "Estimating sedimentary and
// crustal structure using wavefield continuation", GJI 197(1), 443–457.
package wavefield
