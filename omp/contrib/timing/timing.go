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

// Package timing measures elapsed wall-clock time and consumed process CPU
// time around a piece of work.
//
// Usage:
//
//	sw := timing.Start()
//	doWork()
//	fmt.Print(sw.Stop())
package timing

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupported is returned by ProcessCPUTime on platforms without getrusage.
var ErrUnsupported = errors.New("process CPU time not supported on this platform")

// Stopwatch records the start of a measurement.
type Stopwatch struct {
	wall     time.Time
	cpu      time.Duration
	cpuKnown bool
}

// Start begins a measurement.
func Start() *Stopwatch {
	cpu, err := ProcessCPUTime()
	return &Stopwatch{
		wall:     time.Now(),
		cpu:      cpu,
		cpuKnown: err == nil,
	}
}

// Stop ends the measurement. It may be called more than once; each call
// measures from Start.
func (s *Stopwatch) Stop() Report {
	r := Report{Wall: time.Since(s.wall)}
	if !s.cpuKnown {
		return r
	}
	if cpu, err := ProcessCPUTime(); err == nil {
		r.CPU = max(cpu-s.cpu, 0)
		r.CPUKnown = true
	}
	return r
}

// Report is the result of a measurement.
type Report struct {
	// Wall is the elapsed monotonic wall-clock time.
	Wall time.Duration

	// CPU is the user plus system time consumed by all threads of the
	// process. It exceeds Wall when several workers were busy.
	CPU time.Duration

	// CPUKnown is false when the platform cannot report CPU time.
	CPUKnown bool
}

// String formats the report as a two-line table in seconds with two decimals:
//
//	elapsed time      cpu time
//	      0.01 s        0.03 s
func (r Report) String() string {
	return fmt.Sprintf("elapsed time      cpu time\n    %6.2f s      %6.2f s\n",
		r.Wall.Seconds(), r.CPU.Seconds())
}
