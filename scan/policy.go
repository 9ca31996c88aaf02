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

package scan

import (
	"fmt"

	"github.com/ajroetker/pscan/platform"
)

// Block geometry of the built-in policies.
const (
	// DefaultPages is the number of memory pages per block used by
	// ExclusivePageBlock.
	DefaultPages = 2

	// FixedBlockBytes is the block footprint of FixedBlockPolicy: one page
	// plus 16 KiB, independent of the worker count.
	FixedBlockBytes = 4096 + 16384
)

// Policy describes how a scan assigns blocks to workers.
//
// The zero value is a blocked, stepped policy with one-element blocks.
type Policy struct {
	// Name identifies the policy in reports and benchmarks.
	Name string

	// BlockBytes is the target byte footprint of one block. The block size
	// in elements is BlockBytes divided by the element width, at least 1.
	// Ignored when SinglePartition is set.
	BlockBytes int

	// SinglePartition gives every worker one contiguous partition of
	// n/P elements and runs exactly one step.
	SinglePartition bool

	// Pipelined overlaps the carry fold and shift of step s-1 with the
	// local scan of step s.
	Pipelined bool
}

// PageBlockPolicy returns the page-block policy: blocks of pages memory
// pages, stepped schedule. pages <= 0 uses DefaultPages.
func PageBlockPolicy(pages int) Policy {
	if pages <= 0 {
		pages = DefaultPages
	}
	return Policy{
		Name:       fmt.Sprintf("page-block-%d", pages),
		BlockBytes: pages * platform.PageSize(),
	}
}

// FixedBlockPolicy returns the pipelined fixed 20 KiB block policy.
func FixedBlockPolicy() Policy {
	return Policy{
		Name:       "fixed-block",
		BlockBytes: FixedBlockBytes,
		Pipelined:  true,
	}
}

// SinglePartitionPolicy returns the single-partition policy.
func SinglePartitionPolicy() Policy {
	return Policy{
		Name:            "single-partition",
		SinglePartition: true,
	}
}

// Plan is the block decomposition of one scan call.
type Plan struct {
	Workers         int // team size P
	BlockSize       int // elements per block
	ElementsPerStep int // Workers * BlockSize
	Steps           int // whole steps run in parallel
	RemainderStart  int // first element of the serial tail
}

// Plan computes the decomposition of n elements of elemSize bytes over
// workers workers. workers is clamped to [1, platform.MaxWorkers].
//
// When n is too small to fill one step, Steps is 0 and every element belongs
// to the serial tail.
func (p Policy) Plan(n, workers, elemSize int) Plan {
	n = max(n, 0)
	workers = platform.ClampWorkers(workers)

	var blockSize int
	if p.SinglePartition {
		blockSize = n / workers
	} else {
		blockSize = max(p.BlockBytes/max(elemSize, 1), 1)
	}

	plan := Plan{
		Workers:         workers,
		BlockSize:       blockSize,
		ElementsPerStep: workers * blockSize,
	}
	if plan.ElementsPerStep > 0 {
		plan.Steps = n / plan.ElementsPerStep
	}
	plan.RemainderStart = plan.Steps * plan.ElementsPerStep
	return plan
}

// blockStart returns the first element of worker id's block in step.
func (p Plan) blockStart(step, id int) int {
	return step*p.ElementsPerStep + id*p.BlockSize
}

// String implements fmt.Stringer.
func (p Plan) String() string {
	return fmt.Sprintf("workers=%d block=%d step=%d steps=%d remainder=%d",
		p.Workers, p.BlockSize, p.ElementsPerStep, p.Steps, p.RemainderStart)
}
