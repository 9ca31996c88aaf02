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

// Package scan computes parallel exclusive prefix sums (scans) of unsigned
// integer slices, tuned to saturate memory bandwidth on multi-core machines.
//
// For an input in of length n the output satisfies out[0] = 0 and
// out[i] = in[0] + ... + in[i-1], with the native wraparound of the element
// type. The result is bit-identical to a serial scan for every worker count.
//
// # Algorithm
//
// The slice is cut into steps of P blocks, one block per worker. In every
// step each worker scans its block locally, the team meets at a barrier,
// each worker folds the block sums of the lower worker ids into its carry and
// adds the carry to its block. Elements that do not fill a whole step are
// scanned serially at the end, seeded with the running total.
//
// Block sums live in a double-buffered carry table with one cache line per
// entry, so that workers never share a line they write to and a worker
// starting step s+1 never overwrites a value still being read for step s.
//
// # Policies
//
// The block assignment is a [Policy]:
//   - [PageBlockPolicy]: blocks of a few memory pages, stepped schedule.
//   - [FixedBlockPolicy]: 20 KiB blocks, pipelined schedule that shifts
//     step s-1 while scanning step s, one barrier per step.
//   - [SinglePartitionPolicy]: one large partition per worker and a single
//     step; the n mod P trailing elements go through the serial tail.
//
// # Example Usage
//
//	in := make([]uint32, n)
//	out := make([]uint32, n)
//	scan.ExclusiveFixedBlock(in, out, n)
//
//	// Or with an explicit policy and team size
//	e := scan.New[uint32](scan.PageBlockPolicy(4), 8)
//	e.ExclusiveInPlace(out, n)
//
// The worker count defaults to platform.NumWorkers, which honours the
// PSCAN_NUM_THREADS environment variable.
package scan
