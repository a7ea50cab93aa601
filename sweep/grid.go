// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyAxis indicates a grid axis without values.
var ErrEmptyAxis = errors.New("sweep: grid axis has no values")

// Axis is one named dimension of a grid.
type Axis struct {
	Name   string
	Values []float64
}

// Linspace returns an axis of n evenly spaced values over [lo, hi].
// n == 1 yields {lo}.
func Linspace(name string, lo, hi float64, n int) Axis {
	if n < 1 {
		return Axis{Name: name}
	}
	v := make([]float64, n)
	if n == 1 {
		v[0] = lo
	} else {
		floats.Span(v, lo, hi)
	}
	return Axis{Name: name, Values: v}
}

// Grid is a Cartesian product of axes. Points are enumerated in row-major
// order: the last axis varies fastest.
type Grid struct {
	Axes []Axis
}

// Len returns the number of grid points.
func (g Grid) Len() int {
	if len(g.Axes) == 0 {
		return 0
	}
	n := 1
	for _, a := range g.Axes {
		n *= len(a.Values)
	}
	return n
}

// Shape returns the number of values per axis.
func (g Grid) Shape() []int {
	s := make([]int, len(g.Axes))
	for i, a := range g.Axes {
		s[i] = len(a.Values)
	}
	return s
}

// Point returns the coordinates of the flat index idx.
func (g Grid) Point(idx int) []float64 {
	x := make([]float64, len(g.Axes))
	for d := len(g.Axes) - 1; d >= 0; d-- {
		n := len(g.Axes[d].Values)
		x[d] = g.Axes[d].Values[idx%n]
		idx /= n
	}
	return x
}

func (g Grid) validate() error {
	if len(g.Axes) == 0 {
		return fmt.Errorf("%w: no axes", ErrEmptyAxis)
	}
	for i, a := range g.Axes {
		if len(a.Values) == 0 {
			return fmt.Errorf("%w: axis %d (%s)", ErrEmptyAxis, i, a.Name)
		}
	}
	return nil
}

// GridResult holds the value of every grid point in row-major order.
type GridResult struct {
	Grid   Grid
	Values []float64
}

// At returns the value at the per-axis indices idx.
func (r GridResult) At(idx ...int) float64 {
	flat := 0
	for d, i := range idx {
		flat = flat*len(r.Grid.Axes[d].Values) + i
	}
	return r.Values[flat]
}

// Best returns the point with the smallest finite value and that value.
// ok is false when no value is finite.
func (r GridResult) Best() (x []float64, v float64, ok bool) {
	best := -1
	for i, f := range r.Values {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if best < 0 || f < r.Values[best] {
			best = i
		}
	}
	if best < 0 {
		return nil, 0, false
	}
	return r.Grid.Point(best), r.Values[best], true
}

// Evaluate computes fn at every grid point on the pool. fn must be safe for
// concurrent use. The returned values are in row-major order regardless of
// completion order. A cancelled context aborts the sweep with ctx.Err().
func Evaluate(ctx context.Context, p *Pool, g Grid, fn func(x []float64) float64) (GridResult, error) {
	if err := g.validate(); err != nil {
		return GridResult{}, err
	}
	idx := make([]int, g.Len())
	for i := range idx {
		idx[i] = i
	}
	res := Map(ctx, p, idx, func(ctx context.Context, _ int, flat int) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return fn(g.Point(flat)), nil
	})
	if err := FirstError(res); err != nil {
		return GridResult{}, err
	}
	out := GridResult{Grid: g, Values: make([]float64, len(res))}
	for _, r := range res {
		out.Values[r.Index] = r.Value
	}
	return out, nil
}
