// SPDX-License-Identifier: MIT

package wavefield

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/seisinv/earth"
)

// Propagate continues the spectral field fv0 downward through layers
// (surface first) and returns the field at the base of the stack in the
// physical basis (u_R, u_Z, τ_R, τ_Z).
//
// fv0[e] is the 4×K field of event e (rows are components, columns match
// the angular frequencies w); p[e] is its ray parameter. For each layer the
// field is mapped to modes by Minv, phase-shifted point-wise by
// exp(i·H·Q_j·w_k) and mapped back by M. The mantle is not part of layers:
// callers apply the mantle Minv themselves.
//
// fv0 is not modified. An empty layer list returns a copy of fv0.
//
// Complexity: O(L·E·K) time for L layers, E events and K frequencies; two
// E×4×K fields of memory.
//
// Errors: ErrShapeMismatch for inconsistent sizes; ErrInvalidModel for an
// invalid layer or a singular mode matrix.
func Propagate(fv0 [][4][]complex128, w []float64, layers []earth.LayerProps, p []float64) ([][4][]complex128, error) {
	if len(fv0) != len(p) {
		return nil, fmt.Errorf("%w: %d fields for %d ray parameters", ErrShapeMismatch, len(fv0), len(p))
	}
	k := len(w)
	for e := range fv0 {
		for c := 0; c < 4; c++ {
			if len(fv0[e][c]) != k {
				return nil, fmt.Errorf("%w: event %d component %d has %d terms, want %d",
					ErrShapeMismatch, e, c, len(fv0[e][c]), k)
			}
		}
	}

	cur := newField(len(fv0), k)
	for e := range fv0 {
		for c := 0; c < 4; c++ {
			copy(cur[e][c], fv0[e][c])
		}
	}
	if len(layers) == 0 {
		return cur, nil
	}

	tmp := newField(len(fv0), k)
	for li, layer := range layers {
		if err := layer.Validate(); err != nil {
			return nil, fmt.Errorf("%w: layer %d: %v", ErrInvalidModel, li, err)
		}
		ms, err := ModeMatrices(layer, p)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", li, err)
		}
		ih := complex(0, layer.H)
		for e := range cur {
			ms.Minv[e].apply(&tmp[e], &cur[e])
			for j := 0; j < 4; j++ {
				a := ih * ms.Q[e][j]
				row := tmp[e][j]
				for i, wk := range w {
					row[i] *= cmplx.Exp(a * complex(wk, 0))
				}
			}
			ms.M[e].apply(&cur[e], &tmp[e])
		}
	}
	return cur, nil
}

// newField allocates n zeroed 4×k spectral fields backed by one slab.
func newField(n, k int) [][4][]complex128 {
	slab := make([]complex128, n*4*k)
	f := make([][4][]complex128, n)
	for e := range f {
		for c := 0; c < 4; c++ {
			off := (e*4 + c) * k
			f[e][c] = slab[off : off+k : off+k]
		}
	}
	return f
}
