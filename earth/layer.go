// SPDX-License-Identifier: MIT

package earth

import (
	"fmt"
	"math"
)

// LayerProps holds the bulk elastic properties of one homogeneous layer.
//
// Fields:
//   - Vp  - P-wave velocity (α), km/s, > 0.
//   - Vs  - S-wave velocity (β), km/s, > 0.
//   - Rho - density (ρ), g/cm³, > 0.
//   - H   - thickness, km, ≥ 0; +Inf for the mantle half-space.
type LayerProps struct {
	Vp  float64
	Vs  float64
	Rho float64
	H   float64
}

// NewLayer returns a validated LayerProps.
func NewLayer(vp, vs, rho, h float64) (LayerProps, error) {
	l := LayerProps{Vp: vp, Vs: vs, Rho: rho, H: h}
	if err := l.Validate(); err != nil {
		return LayerProps{}, err
	}
	return l, nil
}

// HalfSpace returns a validated LayerProps with infinite thickness.
func HalfSpace(vp, vs, rho float64) (LayerProps, error) {
	return NewLayer(vp, vs, rho, math.Inf(1))
}

// Validate checks the physical admissibility of the layer.
// It does not constrain Vp/Vs ratio; the mode matrices decide whether a
// given ray parameter is admissible for the layer.
func (l LayerProps) Validate() error {
	if !positiveFinite(l.Vp) || !positiveFinite(l.Vs) || !positiveFinite(l.Rho) {
		return fmt.Errorf("%w: %s", ErrInvalidLayer, l)
	}
	if math.IsNaN(l.H) || l.H < 0 {
		return fmt.Errorf("%w: thickness %g", ErrInvalidLayer, l.H)
	}
	return nil
}

// IsHalfSpace reports whether the layer has infinite thickness.
func (l LayerProps) IsHalfSpace() bool { return math.IsInf(l.H, 1) }

// Mu returns the shear modulus ρ·Vs².
func (l LayerProps) Mu() float64 { return l.Rho * l.Vs * l.Vs }

// String formats the layer for logs and error messages.
func (l LayerProps) String() string {
	return fmt.Sprintf("{Vp=%g Vs=%g rho=%g H=%g}", l.Vp, l.Vs, l.Rho, l.H)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
