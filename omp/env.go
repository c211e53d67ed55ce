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

// Package omp reads the runtime environment of the examples: the team size and
// loop schedule (from the same variables an OpenMP runtime honors) and a
// description of the CPU the program is running on.
package omp

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/reissmann/openmp-talk/omp/contrib/schedule"
)

// Environment variables.
const (
	// NumThreadsVar sets the number of workers, e.g. OMP_NUM_THREADS=2.
	// Only the first entry of a nested list such as "4,2" is used.
	NumThreadsVar = "OMP_NUM_THREADS"

	// ScheduleVar sets the loop schedule, e.g. OMP_SCHEDULE="dynamic,4".
	ScheduleVar = "OMP_SCHEDULE"

	// QuietVar suppresses per-worker diagnostic lines when true.
	QuietVar = "OMPTALK_QUIET"
)

// ErrInvalidNumThreads is returned when OMP_NUM_THREADS is not a positive integer.
var ErrInvalidNumThreads = errors.New("invalid number of threads")

// DefaultNumThreads is the team size used when nothing is configured: one
// worker per usable CPU.
func DefaultNumThreads() int {
	return runtime.GOMAXPROCS(0)
}

// ParseNumThreads parses a thread count in OMP_NUM_THREADS syntax.
func ParseNumThreads(val string) (int, error) {
	first, _, _ := strings.Cut(val, ",")
	n, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumThreads, val)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d, must be >= 1", ErrInvalidNumThreads, n)
	}
	return n, nil
}

// NumThreads returns the team size from OMP_NUM_THREADS, or
// DefaultNumThreads if the variable is unset or empty. A set but invalid
// value is an error.
func NumThreads() (int, error) {
	val := os.Getenv(NumThreadsVar)
	if strings.TrimSpace(val) == "" {
		return DefaultNumThreads(), nil
	}
	n, err := ParseNumThreads(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", NumThreadsVar, err)
	}
	return n, nil
}

// Schedule returns the loop schedule from OMP_SCHEDULE, or schedule.Default
// if the variable is unset or empty.
func Schedule() (schedule.Schedule, error) {
	val := os.Getenv(ScheduleVar)
	if strings.TrimSpace(val) == "" {
		return schedule.Default(), nil
	}
	s, err := schedule.Parse(val)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("%s: %w", ScheduleVar, err)
	}
	return s, nil
}

// QuietEnv checks if the OMPTALK_QUIET environment variable is set.
func QuietEnv() bool {
	val := os.Getenv(QuietVar)
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
