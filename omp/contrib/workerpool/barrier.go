// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"fmt"
	"sync"
)

// Barrier is a cyclic barrier: Wait blocks until parties goroutines have
// called it, then releases all of them and resets for the next round.
type Barrier struct {
	parties int

	mu         sync.Mutex
	cond       sync.Cond
	arrived    int
	generation uint64
}

// NewBarrier creates a barrier for the given number of parties (>= 1).
func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		panic(fmt.Sprintf("workerpool: barrier needs at least 1 party, got %d", parties))
	}
	b := &Barrier{parties: parties}
	b.cond = sync.Cond{L: &b.mu}
	return b
}

// Parties returns the number of goroutines the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until all parties have arrived.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}

// Worker identifies one member of the team executing a Parallel region.
type Worker struct {
	// ID is the logical worker number in [0, NumWorkers).
	ID int

	// NumWorkers is the team size.
	NumWorkers int

	barrier *Barrier
}

// Master reports whether this is worker 0.
func (w Worker) Master() bool {
	return w.ID == 0
}

// Barrier blocks until every worker of the region has reached it.
func (w Worker) Barrier() {
	w.barrier.Wait()
}
