// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reissmann/openmp-talk/omp"
	"github.com/reissmann/openmp-talk/omp/contrib/hello"
	"github.com/reissmann/openmp-talk/omp/contrib/workerpool"
)

func newHelloCmd() *cobra.Command {
	var threads int
	cmd := &cobra.Command{
		Use:   "hello",
		Short: "Print a greeting from every worker of one parallel region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := threads
			if !cmd.Flags().Changed("threads") {
				var err error
				if n, err = omp.NumThreads(); err != nil {
					return err
				}
			} else if n < 1 {
				return fmt.Errorf("--threads: %w: %d, must be >= 1", omp.ErrInvalidNumThreads, n)
			}

			pool := workerpool.New(n)
			defer pool.Close()
			return hello.Parallel(pool, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "number of workers (default $"+omp.NumThreadsVar+" or the number of CPUs)")
	return cmd
}

func newHelloThreadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hello-threads [N]",
		Short: "Create N goroutines that each print a greeting, then join them",
		Long: fmt.Sprintf(`Creates N goroutines (default %d), each printing a greeting, and waits
for all of them to finish.`, hello.DefaultThreads),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := hello.DefaultThreads
			if len(args) == 1 {
				var err error
				if n, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("%w: %q", hello.ErrInvalidThreadCount, args[0])
				}
			}
			return hello.Threads(cmd.Context(), n, cmd.OutOrStdout())
		},
	}
}
