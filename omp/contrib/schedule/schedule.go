// Copyright 2025 openmp-talk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package schedule describes how the iterations of a parallel loop are
// distributed over the workers of a pool.
//
// The three policies mirror the OpenMP loop schedules:
//
//   - Static: rows are cut into chunks of Chunk rows, and chunk c is owned by
//     worker c % workers. The mapping is fixed before the loop starts.
//   - Dynamic: chunks of Chunk rows are handed out first come, first served.
//   - Guided: like Dynamic, but each grab takes max(Chunk, remaining/workers)
//     rows, so chunks shrink as the loop drains.
//
// Usage:
//
//	s, err := schedule.Parse("static,10")
//	it := schedule.NewIterator(s, rows, workers)
//	for r, ok := it.Next(worker); ok; r, ok = it.Next(worker) {
//	    process(r.Start, r.End)
//	}
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// DefaultChunk is the chunk size used by the reference matrix program.
const DefaultChunk = 10

// Kind is a loop scheduling policy.
type Kind int

const (
	// Static assigns chunks round-robin before the loop starts.
	Static Kind = iota

	// Dynamic hands out fixed-size chunks on demand.
	Dynamic

	// Guided hands out shrinking chunks on demand.
	Guided
)

// String returns the OMP_SCHEDULE spelling of the policy.
func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Guided:
		return "guided"
	default:
		return "unknown"
	}
}

// ErrInvalidSchedule is returned by Parse for malformed schedule strings.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule is a policy plus its chunk size.
// A Chunk <= 0 means "unspecified", see EffectiveChunk.
type Schedule struct {
	Kind  Kind
	Chunk int
}

// Default returns static scheduling with DefaultChunk.
func Default() Schedule {
	return Schedule{Kind: Static, Chunk: DefaultChunk}
}

// String returns the schedule in OMP_SCHEDULE syntax, e.g. "static,10".
func (s Schedule) String() string {
	if s.Chunk <= 0 {
		return s.Kind.String()
	}
	return s.Kind.String() + "," + strconv.Itoa(s.Chunk)
}

// Parse reads a schedule in OMP_SCHEDULE syntax: "kind[,chunk]".
// Kind is one of static, dynamic or guided (case-insensitive).
func Parse(text string) (Schedule, error) {
	kindText, chunkText, hasChunk := strings.Cut(strings.TrimSpace(text), ",")
	var s Schedule
	switch strings.ToLower(strings.TrimSpace(kindText)) {
	case "static":
		s.Kind = Static
	case "dynamic":
		s.Kind = Dynamic
	case "guided":
		s.Kind = Guided
	default:
		return Schedule{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidSchedule, kindText)
	}
	if !hasChunk {
		return s, nil
	}
	chunk, err := strconv.Atoi(strings.TrimSpace(chunkText))
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: chunk %q: %w", ErrInvalidSchedule, chunkText, err)
	}
	if chunk < 1 {
		return Schedule{}, fmt.Errorf("%w: chunk must be >= 1, got %d", ErrInvalidSchedule, chunk)
	}
	s.Chunk = chunk
	return s, nil
}

// EffectiveChunk resolves an unspecified chunk size for a loop of n
// iterations over the given number of workers. Static without a chunk splits
// the loop into one contiguous block per worker; Dynamic and Guided default
// to a minimum chunk of 1.
func (s Schedule) EffectiveChunk(n, workers int) int {
	if s.Chunk > 0 {
		return s.Chunk
	}
	if s.Kind == Static {
		workers = max(workers, 1)
		return max((n+workers-1)/workers, 1)
	}
	return 1
}

// Range is the half-open interval of rows [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of rows in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Owner returns the worker that owns row under static scheduling with the
// given chunk size: chunk number row/chunk goes to worker (row/chunk) % workers.
func Owner(row, chunk, workers int) int {
	if chunk <= 0 || workers <= 0 {
		panic(fmt.Sprintf("schedule: Owner requires chunk and workers >= 1, got chunk=%d workers=%d", chunk, workers))
	}
	return (row / chunk) % workers
}

// Ranges lists, in increasing order, the contiguous ranges of [0, n) that
// worker owns under static scheduling. Workers beyond the number of chunks get
// no ranges.
func Ranges(n, chunk, workers, worker int) []Range {
	if n <= 0 || worker < 0 || worker >= workers {
		return nil
	}
	if chunk <= 0 {
		panic(fmt.Sprintf("schedule: Ranges requires chunk >= 1, got %d", chunk))
	}
	numChunks := (n + chunk - 1) / chunk
	owned := lo.Filter(lo.Range(numChunks), func(c int, _ int) bool {
		return c%workers == worker
	})
	return lo.Map(owned, func(c int, _ int) Range {
		return Range{Start: c * chunk, End: min((c+1)*chunk, n)}
	})
}
