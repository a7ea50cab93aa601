// SPDX-License-Identifier: MIT

package mcmc

import "gonum.org/v1/gonum/floats"

// cluster groups the points (sorted best first) by single linkage: two
// points share a cluster when a chain of neighbours closer than radius in
// the unit box connects them. The best point of each cluster represents it;
// representatives are returned best first, at most n of them.
func cluster(points []Point, b Bounds, radius float64, n int) []Point {
	if len(points) == 0 || n < 1 {
		return nil
	}
	unit := make([][]float64, len(points))
	for i, p := range points {
		unit[i] = make([]float64, len(p.X))
		b.normalize(unit[i], p.X)
	}

	parent := make([]int, len(points))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range unit {
		for j := i + 1; j < len(unit); j++ {
			if floats.Distance(unit[i], unit[j], 2) >= radius {
				continue
			}
			ri, rj := find(i), find(j)
			if ri == rj {
				continue
			}
			// Root at the lower index, which is the better point.
			if rj < ri {
				ri, rj = rj, ri
			}
			parent[rj] = ri
		}
	}

	var reps []Point
	for i := range points {
		if find(i) != i {
			continue
		}
		reps = append(reps, points[i])
		if len(reps) == n {
			break
		}
	}
	return reps
}
