// SPDX-License-Identifier: MIT

package earth

import "fmt"

// Model is a layer stack (surface first) over a mantle half-space.
// Layers never contains the mantle.
type Model struct {
	Mantle LayerProps
	Layers []LayerProps
}

// Validate checks every layer and the mantle/stack thickness contract.
func (m Model) Validate() error {
	if err := m.Mantle.Validate(); err != nil {
		return fmt.Errorf("mantle: %w", err)
	}
	if !m.Mantle.IsHalfSpace() {
		return fmt.Errorf("%w: got %g", ErrMantleThickness, m.Mantle.H)
	}
	for i, l := range m.Layers {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		if l.IsHalfSpace() {
			return fmt.Errorf("layer %d: %w", i, ErrUnboundedLayer)
		}
	}
	return nil
}

// Depth returns the total thickness of the stack above the mantle.
func (m Model) Depth() float64 {
	var d float64
	for _, l := range m.Layers {
		d += l.H
	}
	return d
}

// FromParams builds a Model from a flat parameter vector
// [H_0, Vs_0, H_1, Vs_1, ...] with fixed per-layer Vp and density.
// The vector layout matches the optimizer's search space.
//
// Returns ErrInvalidLayer (wrapped) when the vector length does not match
// 2·len(vp) or when vp and rho differ in length.
func FromParams(mantle LayerProps, x, vp, rho []float64) (Model, error) {
	if len(vp) != len(rho) || len(x) != 2*len(vp) {
		return Model{}, fmt.Errorf("%w: %d params for %d layers", ErrInvalidLayer, len(x), len(vp))
	}
	layers := make([]LayerProps, len(vp))
	for i := range layers {
		layers[i] = LayerProps{Vp: vp[i], Vs: x[2*i+1], Rho: rho[i], H: x[2*i]}
	}
	m := Model{Mantle: mantle, Layers: layers}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}
