// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Dims are the sizes of the product: A is P×Q, B is Q×R and C is P×R.
type Dims struct {
	P, Q, R int
}

// DefaultDims is the size of the reference program.
var DefaultDims = Dims{P: 32, Q: 32, R: 32}

// ErrInvalidDims is returned for non-positive matrix sizes.
var ErrInvalidDims = errors.New("invalid matrix dimensions")

// Validate reports whether all sizes are positive.
func (d Dims) Validate() error {
	if d.P < 1 || d.Q < 1 || d.R < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidDims, d)
	}
	return nil
}

// String returns the dims as "PxQxR".
func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.P, d.Q, d.R)
}

// Matrix is a dense row-major matrix of int64.
type Matrix struct {
	Rows, Cols int
	Data       []int64
}

// New allocates a zeroed rows×cols matrix.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matmul: negative matrix size %dx%d", rows, cols))
	}
	return &Matrix{Rows: rows, Cols: cols, Data: make([]int64, rows*cols)}
}

// FromRows builds a matrix from a slice of equally sized rows.
func FromRows(rows [][]int64) *Matrix {
	if len(rows) == 0 {
		return New(0, 0)
	}
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.Cols {
			panic(fmt.Sprintf("matmul: row %d has %d columns, want %d", i, len(row), m.Cols))
		}
		copy(m.Row(i), row)
	}
	return m
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) int64 {
	return m.Data[i*m.Cols+j]
}

// Set sets element (i, j).
func (m *Matrix) Set(i, j int, v int64) {
	m.Data[i*m.Cols+j] = v
}

// Row returns row i as a slice aliasing the matrix storage.
func (m *Matrix) Row(i int) []int64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{Rows: m.Rows, Cols: m.Cols, Data: slices.Clone(m.Data)}
}

// Equal reports whether both matrices have the same shape and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	return m.Rows == other.Rows && m.Cols == other.Cols && slices.Equal(m.Data, other.Data)
}

// ToRows copies the matrix into a slice of rows.
func (m *Matrix) ToRows() [][]int64 {
	rows := make([][]int64, m.Rows)
	for i := range rows {
		rows[i] = slices.Clone(m.Row(i))
	}
	return rows
}

// Print writes the matrix with one line per row and each element right
// aligned in 12 columns.
func (m *Matrix) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := range m.Rows {
		for _, v := range m.Row(i) {
			fmt.Fprintf(bw, "%12d", v)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FillSum sets m(i,j) = i + j. This is source matrix A.
func FillSum(m *Matrix) {
	for i := range m.Rows {
		row := m.Row(i)
		for j := range row {
			row[j] = int64(i + j)
		}
	}
}

// FillProduct sets m(i,j) = i * j. This is source matrix B.
func FillProduct(m *Matrix) {
	for i := range m.Rows {
		row := m.Row(i)
		for j := range row {
			row[j] = int64(i * j)
		}
	}
}
