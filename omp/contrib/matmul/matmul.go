// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when A, B and C do not form a product.
var ErrDimensionMismatch = errors.New("matrix dimension mismatch")

func checkDims(a, b, c *Matrix) error {
	if a.Cols != b.Rows || c.Rows != a.Rows || c.Cols != b.Cols {
		return fmt.Errorf("%w: A:%dx%d, B:%dx%d, C:%dx%d",
			ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols, c.Rows, c.Cols)
	}
	return nil
}

// MatMul computes C = A × B with a single goroutine using the textbook triple
// loop. It is the reference every parallel variant must match exactly.
func MatMul(a, b, c *Matrix) error {
	if err := checkDims(a, b, c); err != nil {
		return err
	}
	for i := range a.Rows {
		multiplyRow(a, b, c, i)
	}
	return nil
}

// multiplyRow computes row i of C. C cells are assigned, not accumulated, so
// the previous contents of C do not matter.
func multiplyRow(a, b, c *Matrix, i int) {
	aRow := a.Row(i)
	cRow := c.Row(i)
	for j := range cRow {
		var sum int64
		for k, av := range aRow {
			sum += av * b.Data[k*b.Cols+j]
		}
		cRow[j] = sum
	}
}
