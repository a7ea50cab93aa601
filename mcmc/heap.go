// SPDX-License-Identifier: MIT

package mcmc

import (
	"container/heap"
	"sort"
)

// candidateHeap is a max-heap of points ordered by F, so the worst retained
// candidate sits at the root and is evicted first.
type candidateHeap []Point

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].F > h[j].F }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(Point)) }

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = Point{}
	*h = old[:n-1]
	return it
}

// candidates keeps the best capacity points seen so far.
type candidates struct {
	cap int
	h   candidateHeap
}

func newCandidates(capacity int) *candidates {
	return &candidates{cap: capacity, h: make(candidateHeap, 0, capacity+1)}
}

// offer inserts p (copying X) if it improves on the worst retained point or
// the set is not full.
func (c *candidates) offer(p Point) {
	if len(c.h) >= c.cap && p.F >= c.h[0].F {
		return
	}
	heap.Push(&c.h, Point{X: append([]float64(nil), p.X...), F: p.F})
	if len(c.h) > c.cap {
		heap.Pop(&c.h)
	}
}

// sorted returns the retained points, best first.
func (c *candidates) sorted() []Point {
	out := make([]Point, len(c.h))
	copy(out, c.h)
	sort.SliceStable(out, func(i, j int) bool { return out[i].F < out[j].F })
	return out
}
