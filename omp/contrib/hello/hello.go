// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

// Package hello prints "Hello, world." once per worker, in two styles: as an
// implicit parallel region on a worker pool, and by explicitly creating and
// joining a number of goroutines.
package hello

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/reissmann/openmp-talk/omp/contrib/workerpool"
)

// Greeting is the line every worker prints.
const Greeting = "Hello, world."

// DefaultThreads is the number of threads Threads creates when none are
// requested.
const DefaultThreads = 4

// ErrInvalidThreadCount is returned for thread counts below 1.
var ErrInvalidThreadCount = errors.New("invalid thread count")

// lockedWriter serializes whole lines written by concurrent workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) greet() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	_, err := fmt.Fprintln(lw.w, Greeting)
	return err
}

// Parallel runs one parallel region on the pool in which every worker prints
// the greeting. It returns the first write error, if any.
func Parallel(pool *workerpool.Pool, w io.Writer) error {
	lw := &lockedWriter{w: w}
	errs := make([]error, pool.TeamSize())
	pool.Parallel(func(wk workerpool.Worker) {
		errs[wk.ID] = lw.greet()
	})
	return errors.Join(errs...)
}

// Threads starts n goroutines that each print the greeting, then waits for
// all of them. Goroutines that have not started yet are skipped once ctx is
// done or another goroutine failed.
func Threads(ctx context.Context, n int, w io.Writer) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidThreadCount, n)
	}

	lw := &lockedWriter{w: w}
	g, ctx := errgroup.WithContext(ctx)
	for range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return lw.greet()
		})
	}
	return g.Wait()
}
