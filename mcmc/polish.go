// SPDX-License-Identifier: MIT

package mcmc

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

const (
	// polishMaxEvals caps objective calls of one Polish.
	polishMaxEvals = 2000

	// polishSimplex is the initial simplex edge as a fraction of each width.
	polishSimplex = 0.05
)

// Polish refines x0 locally with the Nelder–Mead simplex method, treating
// points outside bounds (and non-finite values) as +Inf. The returned point
// is never worse than x0 and always inside bounds.
//
// ctx is checked before and after the search; a cancelled search makes
// every further evaluation +Inf so the simplex stalls quickly.
func Polish(ctx context.Context, obj Objective, bounds Bounds, x0 []float64) (Point, error) {
	if obj == nil {
		return Point{}, ErrNilObjective
	}
	if err := bounds.Validate(); err != nil {
		return Point{}, err
	}
	if len(x0) != bounds.Dim() || !bounds.Contains(x0) {
		return Point{}, fmt.Errorf("%w: x0 %v outside bounds", ErrBoundsViolation, x0)
	}
	if err := ctx.Err(); err != nil {
		return Point{}, err
	}

	start := Point{X: append([]float64(nil), x0...), F: obj(x0)}
	if !finite(start.F) {
		start.F = math.Inf(1)
		return start, nil
	}

	f := func(x []float64) float64 {
		if ctx.Err() != nil || !bounds.Contains(x) {
			return math.Inf(1)
		}
		v := obj(x)
		if !finite(v) {
			return math.Inf(1)
		}
		return v
	}

	dim := bounds.Dim()
	verts := make([][]float64, dim+1)
	vals := make([]float64, dim+1)
	verts[0], vals[0] = start.X, start.F
	for d := 0; d < dim; d++ {
		v := append([]float64(nil), start.X...)
		h := polishSimplex * (bounds.Upper[d] - bounds.Lower[d])
		if v[d]+h > bounds.Upper[d] {
			h = -h
		}
		v[d] += h
		verts[d+1], vals[d+1] = v, f(v)
	}

	settings := &optimize.Settings{
		FuncEvaluations: polishMaxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 50,
		},
	}
	method := &optimize.NelderMead{InitialVertices: verts, InitialValues: vals}
	res, err := optimize.Minimize(optimize.Problem{Func: f}, start.X, settings, method)
	if cerr := ctx.Err(); cerr != nil {
		return start, cerr
	}
	if err != nil {
		return start, fmt.Errorf("mcmc: polish: %w", err)
	}
	if res.F < start.F && bounds.Contains(res.X) {
		return Point{X: res.X, F: res.F}, nil
	}
	return start, nil
}
