// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package omp

func features() []string {
	return nil
}
