// SPDX-License-Identifier: MIT

package wavefield_test

import (
	"testing"

	"github.com/katalvlaran/seisinv/earth"
	"github.com/katalvlaran/seisinv/wavefield"
)

func BenchmarkEvaluate_OneLayer(b *testing.B) {
	fc := syntheticComputer(b)
	m := offModel(32, 3.6)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fc.Evaluate(m, wavefield.WithoutMantleField()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate_ThreeLayers(b *testing.B) {
	fc := syntheticComputer(b)
	m := earth.Model{Mantle: mantle, Layers: []earth.LayerProps{
		{Vp: 2.5, Vs: 1.2, Rho: 2.1, H: 1.5},
		{Vp: 5.8, Vs: 3.4, Rho: 2.6, H: 15},
		{Vp: 6.6, Vs: 3.8, Rho: 2.9, H: 20},
	}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fc.Evaluate(m, wavefield.WithoutMantleField()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkModeMatrices(b *testing.B) {
	p := []float64{0.04, 0.05, 0.06, 0.07, 0.08}
	for i := 0; i < b.N; i++ {
		if _, err := wavefield.ModeMatrices(crust, p); err != nil {
			b.Fatal(err)
		}
	}
}
