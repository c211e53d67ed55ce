// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrVerify is returned when C differs from the gonum product.
	ErrVerify = errors.New("result differs from gonum product")

	// ErrInexact is returned when the inputs are too large for a float64
	// product to be exact, so gonum cannot serve as an oracle.
	ErrInexact = errors.New("values too large for exact float64 verification")
)

// maxExact is the largest magnitude float64 represents without gaps.
const maxExact = 1 << 53

// VerifyGonum recomputes A × B with gonum's float64 dense multiply and
// compares it with c element by element.
func VerifyGonum(a, b, c *Matrix) error {
	if err := checkDims(a, b, c); err != nil {
		return err
	}
	if a.Rows == 0 || a.Cols == 0 || b.Cols == 0 {
		return nil
	}
	// Every partial sum is bounded by Q * max|A| * max|B|.
	ma, mb := uint64(maxAbs(a)), uint64(maxAbs(b))
	if ma > 0 && mb > maxExact/ma/uint64(a.Cols) {
		return ErrInexact
	}

	var want mat.Dense
	want.Mul(toDense(a), toDense(b))
	for i := range c.Rows {
		for j := range c.Cols {
			if got, w := c.At(i, j), want.At(i, j); float64(got) != w {
				return fmt.Errorf("%w: C[%d][%d] = %d, gonum computed %.0f", ErrVerify, i, j, got, w)
			}
		}
	}
	return nil
}

func toDense(m *Matrix) *mat.Dense {
	data := make([]float64, len(m.Data))
	for i, v := range m.Data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.Rows, m.Cols, data)
}

func maxAbs(m *Matrix) int64 {
	var best int64
	for _, v := range m.Data {
		if v == math.MinInt64 {
			return math.MaxInt64
		}
		if v < 0 {
			v = -v
		}
		best = max(best, v)
	}
	return best
}
