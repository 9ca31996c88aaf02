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

// Command scanbench checks and benchmarks the parallel exclusive scans.
//
// Usage:
//
//	scanbench                         # 10M elements, all variants
//	scanbench 100000000 --threads 16  # larger input, explicit team size
//	scanbench --variants fixed-block,single-partition --reps 100
//	scanbench --random --seed abc     # pseudo-random input instead of ones
//
// Every selected variant is first checked against the reference sequence,
// then timed. The command exits with status 1 when any check fails.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
