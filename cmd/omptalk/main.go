// Copyright 2025 openmp-talk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command omptalk runs the parallel programming examples on a worker pool.
//
// Usage:
//
//	omptalk                          # same as "omptalk matrix"
//	omptalk matrix -t 2 --schedule dynamic,4 --print
//	OMP_NUM_THREADS=2 omptalk matrix --quiet --verify
//	omptalk matrix --out c.ompm && omptalk show c.ompm
//	omptalk hello                    # one greeting per pool worker
//	omptalk hello-threads 8          # create and join 8 goroutines
//
// The team size defaults to OMP_NUM_THREADS, or the number of usable CPUs.
// The loop schedule defaults to OMP_SCHEDULE, or "static,10".
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := defaultMatrixConfig()
	root := &cobra.Command{
		Use:           "omptalk",
		Short:         "Parallel programming examples on an explicit worker pool",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix(cmd, cfg)
		},
	}
	cfg.addFlags(root.Flags())

	root.AddCommand(
		newMatrixCmd(),
		newHelloCmd(),
		newHelloThreadsCmd(),
		newShowCmd(),
	)
	return root
}
