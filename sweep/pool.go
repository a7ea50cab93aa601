// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"runtime"
	"sync"
)

// Pool runs work functions on a bounded number of goroutines.
type Pool struct {
	workers int
}

// NewPool returns a pool of the given size; workers < 1 selects
// runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int { return p.workers }

// Result is the outcome of one work item.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// Map applies fn to every input concurrently and returns the results in
// input order. Items not started before ctx is done carry ctx.Err().
func Map[In, Out any](ctx context.Context, p *Pool, inputs []In, fn func(ctx context.Context, i int, in In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(inputs))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, in := range inputs {
		results[i].Index = i
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		}

		wg.Add(1)
		go func(i int, in In) {
			defer wg.Done()
			defer func() { <-sem }()
			v, err := fn(ctx, i, in)
			results[i].Value, results[i].Err = v, err
		}(i, in)
	}
	wg.Wait()
	return results
}

// FirstError returns the error of the lowest-index failed result, or nil.
func FirstError[T any](results []Result[T]) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
