// Copyright 2025 go-highway Authors
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

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/pscan/buffer"
	"github.com/ajroetker/pscan/harness"
	"github.com/ajroetker/pscan/platform"
	"github.com/ajroetker/pscan/scan"
	"github.com/ajroetker/pscan/team"
)

const defaultElements = 10_000_000

type options struct {
	threads   int
	reps      int
	pages     int
	variants  []string
	random    bool
	seed      string
	checkOnly bool
	benchOnly bool
	verbose   bool
	list      bool
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.IntVarP(&o.threads, "threads", "t", 0, "worker team size (default: "+platform.NumThreadsEnv+" or GOMAXPROCS)")
	fs.IntVarP(&o.reps, "reps", "r", harness.DefaultReps, "timed repetitions per benchmark")
	fs.IntVar(&o.pages, "pages", scan.DefaultPages, "memory pages per block for the page-block variants")
	fs.StringSliceVar(&o.variants, "variants", nil, "comma-separated variants to run (default: all)")
	fs.BoolVar(&o.random, "random", false, "scan pseudo-random words instead of ones")
	fs.StringVar(&o.seed, "seed", "pscan", "seed of the pseudo-random input")
	fs.BoolVar(&o.checkOnly, "check-only", false, "skip the benchmarks")
	fs.BoolVar(&o.benchOnly, "bench-only", false, "skip the correctness checks")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "print platform geometry and block plans")
	fs.BoolVar(&o.list, "list", false, "list the variants and exit")
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "scanbench [numElements]",
		Short: "Check and benchmark parallel exclusive prefix sums",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := defaultElements
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 0 {
					return fmt.Errorf("invalid element count %q", args[0])
				}
				n = v
			}
			return run(cmd.OutOrStdout(), n, opts)
		},
		SilenceUsage: true,
	}
	opts.register(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("check-only", "bench-only")

	return cmd
}

func run(w io.Writer, n int, opts *options) error {
	cfg := harness.Config{Workers: opts.threads, Pages: opts.pages}
	variants, err := harness.Select(harness.Variants(cfg), opts.variants)
	if err != nil {
		return err
	}

	if opts.list {
		fmt.Fprintln(w, strings.Join(harness.Names(variants), "\n"))
		return nil
	}

	workers := opts.threads
	if workers <= 0 {
		workers = platform.NumWorkers()
	}
	workers = platform.ClampWorkers(workers)

	fmt.Fprintf(w, "scanning %d elements\n", n)
	if opts.verbose {
		printPlatform(w, n, workers, cfg)
	}

	input, err := buffer.Alloc[uint32](n)
	if err != nil {
		return err
	}
	defer input.Free()
	output, err := buffer.Alloc[uint32](n)
	if err != nil {
		return err
	}
	defer output.Free()

	in, out := input.Data(), output.Data()
	t := team.New(workers)
	var ref []uint32
	if opts.random {
		harness.RandomFill(in, []byte(opts.seed))
		ref = harness.Reference(in)
	} else {
		harness.Fill(t, in, 1)
		ref = harness.Iota(n)
	}
	harness.Fill(t, out, 1)

	var results []harness.Result
	if !opts.benchOnly {
		for _, v := range variants {
			results = append(results, harness.Check(w, v, in, out, ref))
		}
	}

	if !opts.checkOnly {
		for _, v := range variants {
			copy(out, in)
			harness.Benchmark(w, v, in, out, opts.reps)
		}
	}

	if failed := harness.Failed(results); failed > 0 {
		return fmt.Errorf("%d scan checks failed", failed)
	}
	return nil
}

func printPlatform(w io.Writer, n, workers int, cfg harness.Config) {
	fmt.Fprintf(w, "cpu: %s, %d physical cores\n", platform.CPUName(), platform.PhysicalCores())
	fmt.Fprintf(w, "page: %d B, cache line: %d B, L1d: %d B, L2: %d B\n",
		platform.PageSize(), platform.CacheLineSize(), platform.L1DataCacheSize(), platform.L2CacheSize())
	fmt.Fprintf(w, "workers: %d\n", workers)

	for _, p := range []scan.Policy{scan.PageBlockPolicy(cfg.Pages), scan.FixedBlockPolicy(), scan.SinglePartitionPolicy()} {
		fmt.Fprintf(w, "  %-18s %v\n", p.Name, scan.New[uint32](p, workers).Plan(n))
	}
}
