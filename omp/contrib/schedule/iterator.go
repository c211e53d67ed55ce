// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"sync/atomic"
)

// Iterator hands out the rows of one loop to the workers of one team.
//
// Next may be called concurrently, as long as each worker index is used by a
// single goroutine at a time. Across all workers every row in [0, n) is
// returned exactly once.
type Iterator struct {
	kind    Kind
	n       int
	chunk   int
	workers int

	// static: the ranges each worker owns, consumed front to back by that
	// worker only.
	owned [][]Range

	// dynamic/guided: next unassigned row.
	next atomic.Int64
}

// NewIterator creates an iterator for a loop of n rows executed by the given
// number of workers (at least 1).
func NewIterator(s Schedule, n, workers int) *Iterator {
	workers = max(workers, 1)
	it := &Iterator{
		kind:    s.Kind,
		n:       max(n, 0),
		chunk:   s.EffectiveChunk(n, workers),
		workers: workers,
	}
	if it.kind != Dynamic && it.kind != Guided {
		it.owned = make([][]Range, workers)
		for w := range it.owned {
			it.owned[w] = Ranges(it.n, it.chunk, workers, w)
		}
	}
	return it
}

// Chunk returns the resolved chunk size.
func (it *Iterator) Chunk() int {
	return it.chunk
}

// Workers returns the number of workers the iterator was created for.
func (it *Iterator) Workers() int {
	return it.workers
}

// Next returns the next range for worker, or false once the worker has no
// more rows.
func (it *Iterator) Next(worker int) (Range, bool) {
	if worker < 0 || worker >= it.workers {
		return Range{}, false
	}
	switch it.kind {
	case Dynamic:
		return it.nextDynamic()
	case Guided:
		return it.nextGuided()
	default:
		return it.nextStatic(worker)
	}
}

func (it *Iterator) nextStatic(worker int) (Range, bool) {
	owned := it.owned[worker]
	if len(owned) == 0 {
		return Range{}, false
	}
	it.owned[worker] = owned[1:]
	return owned[0], true
}

func (it *Iterator) nextDynamic() (Range, bool) {
	start := int(it.next.Add(int64(it.chunk))) - it.chunk
	if start >= it.n {
		return Range{}, false
	}
	return Range{Start: start, End: min(start+it.chunk, it.n)}, true
}

func (it *Iterator) nextGuided() (Range, bool) {
	for {
		start := int(it.next.Load())
		remaining := it.n - start
		if remaining <= 0 {
			return Range{}, false
		}
		size := max(it.chunk, (remaining+it.workers-1)/it.workers)
		end := min(start+size, it.n)
		if it.next.CompareAndSwap(int64(start), int64(end)) {
			return Range{Start: start, End: end}, true
		}
	}
}
