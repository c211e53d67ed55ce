// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

// Package store persists matrices as memory-mapped files.
//
// File layout, little endian:
//
//	offset 0   magic   "OMPM"
//	offset 4   version uint32 (1)
//	offset 8   rows    uint32
//	offset 12  cols    uint32
//	offset 16  rows*cols int64 values, row-major
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/reissmann/openmp-talk/omp/contrib/matmul"
)

const (
	headSize = 16
	version  = 1
	itemSize = 8
)

var magic = [4]byte{'O', 'M', 'P', 'M'}

var (
	ErrBadMagic   = errors.New("not a matrix file")
	ErrBadVersion = errors.New("unsupported matrix file version")
	ErrTruncated  = errors.New("matrix file truncated")
	ErrTooLarge   = errors.New("matrix too large for file format")
)

// Save writes m to path, replacing any existing file.
func Save(path string, m *matmul.Matrix) (err error) {
	if uint64(m.Rows) > math.MaxUint32 || uint64(m.Cols) > math.MaxUint32 {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, m.Rows, m.Cols)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err = f.Truncate(int64(headSize + itemSize*len(m.Data))); err != nil {
		return err
	}

	data, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, data.Unmap())
	}()

	copy(data[0:4], magic[:])
	binary.LittleEndian.PutUint32(data[4:], version)
	binary.LittleEndian.PutUint32(data[8:], uint32(m.Rows))
	binary.LittleEndian.PutUint32(data[12:], uint32(m.Cols))
	for i, v := range m.Data {
		binary.LittleEndian.PutUint64(data[headSize+i*itemSize:], uint64(v))
	}

	return data.Flush()
}

// Load reads a matrix written by Save. The returned matrix does not
// reference the file.
func Load(path string) (m *matmul.Matrix, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() < headSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, info.Size())
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, data.Unmap())
	}()

	if [4]byte(data[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint32(data[4:]); v != version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	rows := uint64(binary.LittleEndian.Uint32(data[8:]))
	cols := uint64(binary.LittleEndian.Uint32(data[12:]))
	if rows > math.MaxInt || cols > math.MaxInt {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, rows, cols)
	}
	if cols != 0 && rows > uint64(info.Size()-headSize)/itemSize/cols {
		return nil, fmt.Errorf("%w: %d bytes, too small for %dx%d", ErrTruncated, info.Size(), rows, cols)
	}

	m = matmul.New(int(rows), int(cols))
	for i := range m.Data {
		m.Data[i] = int64(binary.LittleEndian.Uint64(data[headSize+i*itemSize:]))
	}
	return m, nil
}
