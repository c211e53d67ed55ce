// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package timing

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ProcessCPUTime returns the user plus system CPU time consumed so far by
// the calling process, summed over all of its threads.
func ProcessCPUTime() (time.Duration, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, fmt.Errorf("getrusage: %w", err)
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano()), nil
}
