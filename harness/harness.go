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

// Package harness drives the scan variants: it seeds input buffers, checks
// every variant against a reference sequence and measures the bandwidth of
// repeated invocations.
//
// Reports are plain lines written to an io.Writer:
//
//	fixed-block scan test: PASS
//	fixed-block benchmark bandwidth: 21873.4 MB/s
package harness

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unsafe"

	"github.com/samber/lo"

	"github.com/ajroetker/pscan/scan"
)

// DefaultReps is the number of timed invocations per benchmark.
const DefaultReps = 30

// dumpLimit is the largest output printed in full when a check fails.
const dumpLimit = 100

// Variant is a named scan entry point.
type Variant struct {
	Name string
	Fn   scan.Func[uint32]

	// InPlace variants ignore in and scan out, which the harness fills
	// with a copy of the input before checking.
	InPlace bool
}

// Config selects the worker count and block geometry of the parallel
// variants.
type Config struct {
	Workers int // team size, <= 0 for platform.NumWorkers
	Pages   int // pages per page-block block, <= 0 for scan.DefaultPages
}

// Variants returns every scan variant, serial references first.
func Variants(cfg Config) []Variant {
	pageBlock := scan.New[uint32](scan.PageBlockPolicy(cfg.Pages), cfg.Workers)
	fixedBlock := scan.New[uint32](scan.FixedBlockPolicy(), cfg.Workers)
	single := scan.New[uint32](scan.SinglePartitionPolicy(), cfg.Workers)

	return []Variant{
		{Name: "serial", Fn: scan.ExclusiveSerial[uint32]},
		{Name: "serial-inplace", InPlace: true, Fn: func(_, out []uint32, n int) {
			scan.ExclusiveSerialInPlace(out, n)
		}},
		{Name: "page-block", Fn: pageBlock.Exclusive},
		{Name: "page-block-inplace", InPlace: true, Fn: func(_, out []uint32, n int) {
			pageBlock.ExclusiveInPlace(out, n)
		}},
		{Name: "fixed-block", Fn: fixedBlock.Exclusive},
		{Name: "single-partition", Fn: single.Exclusive},
	}
}

// Names returns the names of variants in order.
func Names(variants []Variant) []string {
	return lo.Map(variants, func(v Variant, _ int) string { return v.Name })
}

// Select returns the variants whose names are listed, in their original
// order. An empty list selects everything.
func Select(variants []Variant, names []string) ([]Variant, error) {
	if len(names) == 0 {
		return variants, nil
	}
	if unknown, _ := lo.Difference(lo.Uniq(names), Names(variants)); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown variants %s (have %s)",
			strings.Join(unknown, ", "), strings.Join(Names(variants), ", "))
	}
	return lo.Filter(variants, func(v Variant, _ int) bool {
		return lo.Contains(names, v.Name)
	}), nil
}

// Result is the outcome of one correctness check.
type Result struct {
	Name     string
	N        int
	Pass     bool
	Mismatch int // first differing index, -1 when Pass
	Elapsed  time.Duration
}

// Check runs v once over in and compares out against ref, then writes a
// PASS or FAIL line to w. out is overwritten with a copy of in first. On
// failure, outputs of at most 100 elements are printed in full.
func Check(w io.Writer, v Variant, in, out, ref []uint32) Result {
	n := len(in)
	copy(out[:n], in)

	start := time.Now()
	v.Fn(in, out, n)
	res := Result{
		Name:     v.Name,
		N:        n,
		Mismatch: firstMismatch(out[:n], ref[:n]),
		Elapsed:  time.Since(start),
	}
	res.Pass = res.Mismatch < 0

	if res.Pass {
		fmt.Fprintf(w, "%s scan test: PASS\n", v.Name)
		return res
	}

	fmt.Fprintf(w, "%s scan test: FAIL (first mismatch at %d: got %d, want %d)\n",
		v.Name, res.Mismatch, out[res.Mismatch], ref[res.Mismatch])
	if n <= dumpLimit {
		fmt.Fprintln(w, strings.Trim(fmt.Sprint(out[:n]), "[]"))
	}
	return res
}

// Failed returns the number of failed results.
func Failed(results []Result) int {
	return lo.CountBy(results, func(r Result) bool { return !r.Pass })
}

// Bench is the outcome of one bandwidth measurement.
type Bench struct {
	Name    string
	N       int
	Reps    int
	Elapsed time.Duration // all timed repetitions
	MBps    float64       // input megabytes scanned per second
}

// Benchmark times reps invocations of v over in after one warm-up call and
// writes the bandwidth to w. reps <= 0 uses DefaultReps. The output is not
// checked; in-place variants rescan their own previous output.
func Benchmark(w io.Writer, v Variant, in, out []uint32, reps int) Bench {
	if reps <= 0 {
		reps = DefaultReps
	}
	n := len(in)

	// warmup
	v.Fn(in, out, n)

	start := time.Now()
	for range reps {
		v.Fn(in, out, n)
	}
	elapsed := time.Since(start)

	b := Bench{
		Name:    v.Name,
		N:       n,
		Reps:    reps,
		Elapsed: elapsed,
		MBps:    bandwidth(n, reps, elapsed),
	}
	fmt.Fprintf(w, "%s benchmark bandwidth: %.1f MB/s\n", v.Name, b.MBps)
	return b
}

// bandwidth returns MB/s for reps scans of n uint32 elements.
func bandwidth(n, reps int, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(n) * float64(unsafe.Sizeof(uint32(0))) / (secs * 1e6) * float64(reps)
}

func firstMismatch(got, want []uint32) int {
	for i := range got {
		if got[i] != want[i] {
			return i
		}
	}
	return -1
}
