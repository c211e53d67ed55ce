// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"
	"io"
	"sync"

	"github.com/reissmann/openmp-talk/omp/contrib/schedule"
	"github.com/reissmann/openmp-talk/omp/contrib/workerpool"
)

// Tracer receives the per-worker diagnostic lines of a run.
// Implementations must be safe for concurrent use.
type Tracer interface {
	Tracef(worker int, format string, args ...any)
}

// WriterTracer writes each diagnostic as a "Thread <worker>: ..." line.
// Lines from different workers interleave, but never mix.
type WriterTracer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterTracer returns a tracer writing to w.
func NewWriterTracer(w io.Writer) *WriterTracer {
	return &WriterTracer{w: w}
}

// Tracef implements Tracer.
func (t *WriterTracer) Tracef(worker int, format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "Thread %d: ", worker)
	fmt.Fprintf(t.w, format, args...)
	fmt.Fprintln(t.w)
}

// Options configures a parallel run.
type Options struct {
	// Schedule distributes the rows of C. A zero Chunk means "unspecified",
	// see schedule.Schedule.EffectiveChunk.
	Schedule schedule.Schedule

	// Trace, if not nil, receives per-worker diagnostics.
	Trace Tracer

	// RowDone, if not nil, is called by the owning worker after each row of
	// C is complete. It must be safe for concurrent use.
	RowDone func(worker, row int)
}

// DefaultOptions returns static scheduling with chunk size 10 and no tracing.
func DefaultOptions() Options {
	return Options{Schedule: schedule.Default()}
}

func (o *Options) tracef(worker int, format string, args ...any) {
	if o.Trace != nil {
		o.Trace.Tracef(worker, format, args...)
	}
}

func (o *Options) rows(a, b, c *Matrix, worker int, r schedule.Range) {
	for i := r.Start; i < r.End; i++ {
		o.tracef(worker, "Calculating row %d", i)
		multiplyRow(a, b, c, i)
		if o.RowDone != nil {
			o.RowDone(worker, i)
		}
	}
}

// InitSources fills a with the A rule and b with the B rule as two
// independent sections on the pool, and returns once both are filled.
func InitSources(pool *workerpool.Pool, a, b *Matrix, trace Tracer) {
	opts := Options{Trace: trace}
	pool.Sections(
		func(worker int) {
			opts.tracef(worker, "Initializing matrix a")
			FillSum(a)
		},
		func(worker int) {
			opts.tracef(worker, "Initializing matrix b")
			FillProduct(b)
		},
	)
}

// ParallelMatMul computes C = A × B on the pool, distributing the rows of C
// according to opts.Schedule. Every row is computed by exactly one worker and
// only that worker writes it, so no locking is needed. The result is identical
// to MatMul for every pool size and schedule.
func ParallelMatMul(pool *workerpool.Pool, a, b, c *Matrix, opts Options) error {
	if err := checkDims(a, b, c); err != nil {
		return err
	}
	pool.ParallelForSchedule(opts.Schedule, a.Rows, func(worker, start, end int) {
		opts.rows(a, b, c, worker, schedule.Range{Start: start, End: end})
	})
	return nil
}

// Result holds the matrices of a Compute run.
type Result struct {
	A, B, C *Matrix

	// Workers is the team size that executed the run.
	Workers int

	// Schedule is the schedule used, with its chunk size resolved.
	Schedule schedule.Schedule
}

// Compute allocates A, B and C for dims and runs the whole program as one
// parallel region on the pool:
//
//  1. Worker 0 reports the team size.
//  2. Two sections fill A and B, on workers 0 and 1 (mod team size).
//  3. All workers meet at a barrier; no worker reads A or B before both are
//     filled.
//  4. The rows of C are shared out according to opts.Schedule.
//
// This is the fused form of InitSources followed by ParallelMatMul: the team
// is started once and the barrier takes the place of the join between the two.
func Compute(pool *workerpool.Pool, dims Dims, opts Options) (*Result, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		A: New(dims.P, dims.Q),
		B: New(dims.Q, dims.R),
		C: New(dims.P, dims.R),
	}

	var it *schedule.Iterator
	pool.Parallel(func(w workerpool.Worker) {
		if w.Master() {
			res.Workers = w.NumWorkers
			it = schedule.NewIterator(opts.Schedule, dims.P, w.NumWorkers)
			opts.tracef(w.ID, "Running with %d threads", w.NumWorkers)
			opts.tracef(w.ID, "Initializing matrices ...")
		}

		if w.ID == 0 {
			opts.tracef(w.ID, "Initializing matrix a")
			FillSum(res.A)
		}
		if w.ID == 1%w.NumWorkers {
			opts.tracef(w.ID, "Initializing matrix b")
			FillProduct(res.B)
		}

		w.Barrier()

		opts.tracef(w.ID, "Starting matrix multiplication ...")
		for r, ok := it.Next(w.ID); ok; r, ok = it.Next(w.ID) {
			opts.rows(res.A, res.B, res.C, w.ID, r)
		}
	})

	res.Schedule = schedule.Schedule{Kind: opts.Schedule.Kind, Chunk: it.Chunk()}
	return res, nil
}
