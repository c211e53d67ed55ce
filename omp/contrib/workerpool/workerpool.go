// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool that plays
// the role of an OpenMP thread team. A Pool is created once, its workers are
// spawned once, and it is reused for every parallel construct until Close.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	// parallel region with a barrier
//	pool.Parallel(func(w workerpool.Worker) {
//	    setup(w.ID)
//	    w.Barrier()
//	    compute(w.ID)
//	})
//
//	// work-sharing loop
//	pool.ParallelForSchedule(schedule.Default(), rows, func(worker, start, end int) {
//	    processRows(start, end)
//	})
//
// Work submitted to a pool must not itself submit work to the same pool: the
// inner call would wait for workers that are busy running the outer call.
//
// Close must not run concurrently with Parallel, Sections or
// ParallelForSchedule. Constructs started after Close returns run inline.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/reissmann/openmp-talk/omp/contrib/schedule"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool

	// regionMu serializes Parallel regions: a region blocks at its barrier
	// until all of its items run, which needs every worker.
	regionMu sync.Mutex
}

// workItem represents a single task of a parallel operation.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// TeamSize returns the number of logical workers a parallel construct started
// now would use: NumWorkers, or 1 once the pool is closed.
func (p *Pool) TeamSize() int {
	if p.closed.Load() {
		return 1
	}
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe, but calling it while another goroutine
// is inside a parallel construct of this pool is not: that construct may send
// work to the closed channel and panic.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// run submits one task per fn and blocks until all of them return.
func (p *Pool) run(fns []func()) {
	var wg sync.WaitGroup
	wg.Add(len(fns))
	for _, fn := range fns {
		p.workC <- workItem{fn: fn, barrier: &wg}
	}
	wg.Wait()
}

// Parallel runs fn once for every logical worker of the team and blocks until
// all of them return. This is the equivalent of an OpenMP parallel region: the
// Worker passed to fn carries its ID and a barrier shared by the whole team.
//
// Regions on the same pool run one at a time. On a closed pool, or a pool with
// a single worker, fn runs inline as worker 0 of a team of 1.
func (p *Pool) Parallel(fn func(w Worker)) {
	p.parallel(p.TeamSize(), fn)
}

func (p *Pool) parallel(size int, fn func(w Worker)) {
	if size == 1 {
		fn(Worker{ID: 0, NumWorkers: 1, barrier: NewBarrier(1)})
		return
	}

	p.regionMu.Lock()
	defer p.regionMu.Unlock()

	barrier := NewBarrier(size)
	fns := make([]func(), size)
	for id := range size {
		w := Worker{ID: id, NumWorkers: size, barrier: barrier}
		fns[id] = func() { fn(w) }
	}
	p.run(fns)
}

// Sections runs each section as an independent task and blocks until all of
// them complete. Section i is reported as running on logical worker
// i % NumWorkers. With a single worker, or a closed pool, sections run
// sequentially in order on worker 0.
func (p *Pool) Sections(sections ...func(worker int)) {
	if len(sections) == 0 {
		return
	}

	size := p.TeamSize()
	if size == 1 || len(sections) == 1 {
		for _, section := range sections {
			section(0)
		}
		return
	}

	fns := make([]func(), len(sections))
	for i, section := range sections {
		worker := i % size
		fns[i] = func() { section(worker) }
	}
	p.run(fns)
}

// ParallelForSchedule distributes the rows [0, n) over the team according to
// s and calls fn with each assigned range. fn receives the logical worker ID
// and the half-open range [start, end). Blocks until all rows are processed.
//
// With a static schedule, range boundaries and worker assignment match
// schedule.Ranges exactly.
func (p *Pool) ParallelForSchedule(s schedule.Schedule, n int, fn func(worker, start, end int)) {
	if n <= 0 {
		return
	}

	size := p.TeamSize()
	it := schedule.NewIterator(s, n, size)
	p.parallel(size, func(w Worker) {
		for r, ok := it.Next(w.ID); ok; r, ok = it.Next(w.ID) {
			fn(w.ID, r.Start, r.End)
		}
	})
}
