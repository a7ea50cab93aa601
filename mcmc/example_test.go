// SPDX-License-Identifier: MIT

package mcmc_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/seisinv/mcmc"
)

// ExampleMinimize locates the minimum of a shifted paraboloid.
func ExampleMinimize() {
	f := func(x []float64) float64 {
		return (x[0]-1)*(x[0]-1) + (x[1]+0.5)*(x[1]+0.5)
	}
	bounds := mcmc.Bounds{Lower: []float64{-3, -3}, Upper: []float64{3, 3}}

	res, err := mcmc.Minimize(context.Background(), f, bounds,
		mcmc.WithBurnIn(1000), mcmc.WithMaxIter(5000), mcmc.WithSeed(11))
	if err != nil {
		fmt.Println(err)
		return
	}
	best, _ := res.Best()
	refined, err := mcmc.Polish(context.Background(), f, bounds, best.X)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("basins:", len(res.Minima))
	fmt.Printf("minimum: (%.2f, %.2f)\n", refined.X[0], refined.X[1])
	// Output:
	// basins: 1
	// minimum: (1.00, -0.50)
}
