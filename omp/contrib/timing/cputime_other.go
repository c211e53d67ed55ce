// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package timing

import "time"

// ProcessCPUTime always fails on this platform.
func ProcessCPUTime() (time.Duration, error) {
	return 0, ErrUnsupported
}
