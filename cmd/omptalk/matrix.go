// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reissmann/openmp-talk/omp"
	"github.com/reissmann/openmp-talk/omp/contrib/matmul"
	"github.com/reissmann/openmp-talk/omp/contrib/schedule"
	"github.com/reissmann/openmp-talk/omp/contrib/store"
	"github.com/reissmann/openmp-talk/omp/contrib/timing"
	"github.com/reissmann/openmp-talk/omp/contrib/workerpool"
)

type matrixConfig struct {
	threads  int
	schedule string
	chunk    int
	dims     matmul.Dims
	quiet    bool
	print    bool
	verify   bool
	out      string
	progress bool
}

func defaultMatrixConfig() *matrixConfig {
	return &matrixConfig{
		schedule: schedule.Default().String(),
		chunk:    schedule.DefaultChunk,
		dims:     matmul.DefaultDims,
	}
}

func (c *matrixConfig) addFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.threads, "threads", "t", 0, "number of workers (default $"+omp.NumThreadsVar+" or the number of CPUs)")
	fs.StringVar(&c.schedule, "schedule", c.schedule, "loop schedule: static|dynamic|guided[,chunk] (default $"+omp.ScheduleVar+")")
	fs.IntVar(&c.chunk, "chunk", c.chunk, "rows per scheduling chunk, overrides the schedule's chunk")
	fs.IntVar(&c.dims.P, "p", c.dims.P, "rows of A and C")
	fs.IntVar(&c.dims.Q, "q", c.dims.Q, "columns of A, rows of B")
	fs.IntVar(&c.dims.R, "r", c.dims.R, "columns of B and C")
	fs.BoolVar(&c.quiet, "quiet", false, "suppress per-worker diagnostics (default $"+omp.QuietVar+")")
	fs.BoolVar(&c.print, "print", false, "print the result matrix")
	fs.BoolVar(&c.verify, "verify", false, "cross-check the result with gonum")
	fs.StringVar(&c.out, "out", "", "save the result matrix to this file")
	fs.BoolVar(&c.progress, "progress", false, "show a live row counter instead of diagnostics when writing to a terminal")
}

// resolve merges flags with the environment. Explicit flags win.
func (c *matrixConfig) resolve(fs *pflag.FlagSet) (threads int, sched schedule.Schedule, err error) {
	if fs.Changed("threads") {
		if c.threads < 1 {
			return 0, sched, fmt.Errorf("--threads: %w: %d, must be >= 1", omp.ErrInvalidNumThreads, c.threads)
		}
		threads = c.threads
	} else if threads, err = omp.NumThreads(); err != nil {
		return 0, sched, err
	}

	if fs.Changed("schedule") {
		if sched, err = schedule.Parse(c.schedule); err != nil {
			return 0, sched, fmt.Errorf("--schedule: %w", err)
		}
	} else if sched, err = omp.Schedule(); err != nil {
		return 0, sched, err
	}

	if fs.Changed("chunk") {
		if c.chunk < 1 {
			return 0, sched, fmt.Errorf("--chunk: %w: chunk must be >= 1, got %d", schedule.ErrInvalidSchedule, c.chunk)
		}
		sched.Chunk = c.chunk
	}

	if !fs.Changed("quiet") {
		c.quiet = omp.QuietEnv()
	}
	return threads, sched, c.dims.Validate()
}

func newMatrixCmd() *cobra.Command {
	cfg := defaultMatrixConfig()
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Multiply two integer matrices with sections and a static loop schedule",
		Long: `Initializes A(i,j) = i + j and B(i,j) = i * j in two parallel sections,
waits on a barrier, multiplies C = A x B with the rows of C shared out by the
loop schedule, and reports elapsed wall-clock and CPU time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix(cmd, cfg)
		},
	}
	cfg.addFlags(cmd.Flags())
	return cmd
}

func runMatrix(cmd *cobra.Command, cfg *matrixConfig) error {
	threads, sched, err := cfg.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	pool := workerpool.New(threads)
	defer pool.Close()

	opts := matmul.Options{Schedule: sched}
	var prog *progress
	switch {
	case cfg.progress && isTerminal(out):
		prog = startProgress(out, cfg.dims.P)
		opts.RowDone = prog.rowDone
	case !cfg.quiet:
		fmt.Fprintf(out, "Host: %s\n", omp.Describe())
		fmt.Fprintf(out, "Schedule: %s, matrices %s\n", sched, cfg.dims)
		opts.Trace = matmul.NewWriterTracer(out)
	}

	sw := timing.Start()
	res, err := matmul.Compute(pool, cfg.dims, opts)
	report := sw.Stop()
	if prog != nil {
		prog.stop()
	}
	if err != nil {
		return err
	}

	if cfg.print {
		fmt.Fprintln(out, "Result Matrix:")
		if err := res.C.Print(out); err != nil {
			return err
		}
	}
	if cfg.verify {
		if err := matmul.VerifyGonum(res.A, res.B, res.C); err != nil {
			return err
		}
		fmt.Fprintln(out, "Verified against gonum: ok")
	}
	if cfg.out != "" {
		if err := store.Save(cfg.out, res.C); err != nil {
			return fmt.Errorf("saving result: %w", err)
		}
		fmt.Fprintf(out, "Saved %dx%d result to %s\n", res.C.Rows, res.C.Cols, cfg.out)
	}

	printReport(out, report)
	return nil
}

func printReport(w io.Writer, r timing.Report) {
	fmt.Fprint(w, r)
	if !r.CPUKnown {
		fmt.Fprintln(w, "(cpu time not available on this platform)")
	}
}
