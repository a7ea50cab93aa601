// SPDX-License-Identifier: MIT

package wavefield

import (
	"math"

	"github.com/katalvlaran/seisinv/earth"
)

// Objective adapts the computer to a scalar objective over the flat
// parameter vector [H_1, Vs_1, H_2, Vs_2, ...], with per-layer Vp and
// density held fixed. The returned function is safe for concurrent use.
//
// Vectors that do not form a valid model, or whose evaluation fails,
// map to +Inf so that an optimizer always rejects them.
func (fc *FluxComputer) Objective(mantle earth.LayerProps, vp, rho []float64, opts ...EvalOption) func(x []float64) float64 {
	eval := append([]EvalOption{WithoutMantleField()}, opts...)
	return func(x []float64) float64 {
		model, err := earth.FromParams(mantle, x, vp, rho)
		if err != nil {
			return math.Inf(1)
		}
		flux, err := fc.Evaluate(model, eval...)
		if err != nil {
			return math.Inf(1)
		}
		return flux.Mean
	}
}
