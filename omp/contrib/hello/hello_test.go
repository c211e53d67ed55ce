// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package hello

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reissmann/openmp-talk/omp/contrib/workerpool"
)

func countGreetings(t *testing.T, out string) int {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for _, line := range lines {
		require.Equal(t, Greeting, line)
	}
	return len(lines)
}

func TestParallel(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		pool := workerpool.New(workers)
		var buf bytes.Buffer
		require.NoError(t, Parallel(pool, &buf))
		require.Equal(t, workers, countGreetings(t, buf.String()))
		pool.Close()
	}
}

func TestThreads(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Threads(context.Background(), DefaultThreads, &buf))
	require.Equal(t, DefaultThreads, countGreetings(t, buf.String()))

	buf.Reset()
	require.NoError(t, Threads(context.Background(), 2, &buf))
	require.Equal(t, 2, countGreetings(t, buf.String()))
}

func TestThreadsInvalid(t *testing.T) {
	for _, n := range []int{0, -1} {
		err := Threads(context.Background(), n, &bytes.Buffer{})
		require.ErrorIs(t, err, ErrInvalidThreadCount)
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestThreadsWriteError(t *testing.T) {
	err := Threads(context.Background(), 3, failingWriter{})
	require.ErrorIs(t, err, errWrite)
}

func TestThreadsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Threads(ctx, 4, &buf)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, buf.String())
}
