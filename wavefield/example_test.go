// SPDX-License-Identifier: MIT

package wavefield_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/seisinv/earth"
	"github.com/katalvlaran/seisinv/synth"
	"github.com/katalvlaran/seisinv/wavefield"
)

// ExampleFluxComputer_Evaluate scores two crustal models against an
// analytic ensemble generated for a 35 km, Vs=3.7 km/s crust.
func ExampleFluxComputer_Evaluate() {
	mantle := earth.LayerProps{Vp: 8.0, Vs: 4.5, Rho: 3.3, H: math.Inf(1)}
	truth := earth.Model{
		Mantle: mantle,
		Layers: []earth.LayerProps{{Vp: 6.4, Vs: 3.7, Rho: 2.7, H: 35}},
	}

	ens, err := synth.PlaneWave(truth, synth.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	fc, err := wavefield.NewFluxComputer(ens)
	if err != nil {
		fmt.Println(err)
		return
	}

	obj := fc.Objective(mantle, []float64{6.4}, []float64{2.7})
	fmt.Println("true model cancels SU:", obj([]float64{35, 3.7}) < 1e-9)
	fmt.Println("shallow model leaves SU:", obj([]float64{25, 3.7}) > 1e-3)
	// Output:
	// true model cancels SU: true
	// shallow model leaves SU: true
}
