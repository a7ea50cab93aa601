// SPDX-License-Identifier: MIT

package mcmc

// ring is a fixed-capacity buffer keeping the most recent points.
type ring struct {
	buf  []Point
	next int
	full bool
}

func newRing(capacity int) *ring { return &ring{buf: make([]Point, capacity)} }

func (r *ring) push(p Point) {
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.next] = Point{X: append([]float64(nil), p.X...), F: p.F}
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// points returns the retained points, oldest first.
func (r *ring) points() []Point {
	if !r.full {
		return append([]Point(nil), r.buf[:r.next]...)
	}
	out := make([]Point, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}
