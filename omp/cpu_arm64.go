// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package omp

import "golang.org/x/sys/cpu"

func features() []string {
	var f []string
	add := func(has bool, name string) {
		if has {
			f = append(f, name)
		}
	}
	// ASIMD (NEON) is part of the ARMv8-A base architecture.
	add(cpu.ARM64.HasASIMD, "neon")
	add(cpu.ARM64.HasFPHP, "fp16")
	add(cpu.ARM64.HasASIMDDP, "dotprod")
	add(cpu.ARM64.HasSVE, "sve")
	add(cpu.ARM64.HasSVE2, "sve2")
	return f
}
