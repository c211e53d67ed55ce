// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package omp

import (
	"runtime"
	"strconv"
	"strings"
)

// Features returns the names of the notable CPU features detected on this
// machine, in a fixed order. The list is informational only.
func Features() []string {
	return features()
}

// Describe returns a one-line summary of the host, e.g.
// "linux/amd64, 8 CPUs, features: sse4.2 avx avx2 fma".
func Describe() string {
	var sb strings.Builder
	sb.WriteString(runtime.GOOS)
	sb.WriteByte('/')
	sb.WriteString(runtime.GOARCH)
	sb.WriteString(", ")
	sb.WriteString(plural(runtime.NumCPU(), "CPU"))
	if f := Features(); len(f) > 0 {
		sb.WriteString(", features: ")
		sb.WriteString(strings.Join(f, " "))
	}
	return sb.String()
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
