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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/pscan/platform"
)

func TestPlan(t *testing.T) {
	blocked8 := Policy{BlockBytes: 8 * 4}

	tests := []struct {
		name     string
		policy   Policy
		n        int
		workers  int
		elemSize int
		expected Plan
	}{
		{
			name:     "one_step_with_tail",
			policy:   blocked8,
			n:        25,
			workers:  2,
			elemSize: 4,
			expected: Plan{Workers: 2, BlockSize: 8, ElementsPerStep: 16, Steps: 1, RemainderStart: 16},
		},
		{
			name:     "exact_steps",
			policy:   blocked8,
			n:        48,
			workers:  2,
			elemSize: 4,
			expected: Plan{Workers: 2, BlockSize: 8, ElementsPerStep: 16, Steps: 3, RemainderStart: 48},
		},
		{
			name:     "smaller_than_one_step",
			policy:   blocked8,
			n:        15,
			workers:  2,
			elemSize: 4,
			expected: Plan{Workers: 2, BlockSize: 8, ElementsPerStep: 16, Steps: 0, RemainderStart: 0},
		},
		{
			name:     "empty",
			policy:   blocked8,
			n:        0,
			workers:  4,
			elemSize: 4,
			expected: Plan{Workers: 4, BlockSize: 8, ElementsPerStep: 32, Steps: 0, RemainderStart: 0},
		},
		{
			name:     "wide_elements",
			policy:   blocked8,
			n:        100,
			workers:  3,
			elemSize: 8,
			expected: Plan{Workers: 3, BlockSize: 4, ElementsPerStep: 12, Steps: 8, RemainderStart: 96},
		},
		{
			name:     "block_smaller_than_element",
			policy:   Policy{BlockBytes: 3},
			n:        10,
			workers:  4,
			elemSize: 4,
			expected: Plan{Workers: 4, BlockSize: 1, ElementsPerStep: 4, Steps: 2, RemainderStart: 8},
		},
		{
			name:     "single_partition",
			policy:   SinglePartitionPolicy(),
			n:        25,
			workers:  2,
			elemSize: 4,
			expected: Plan{Workers: 2, BlockSize: 12, ElementsPerStep: 24, Steps: 1, RemainderStart: 24},
		},
		{
			name:     "single_partition_fewer_elements_than_workers",
			policy:   SinglePartitionPolicy(),
			n:        3,
			workers:  8,
			elemSize: 4,
			expected: Plan{Workers: 8, BlockSize: 0, ElementsPerStep: 0, Steps: 0, RemainderStart: 0},
		},
		{
			name:     "zero_workers_clamped",
			policy:   blocked8,
			n:        25,
			workers:  0,
			elemSize: 4,
			expected: Plan{Workers: 1, BlockSize: 8, ElementsPerStep: 8, Steps: 3, RemainderStart: 24},
		},
		{
			name:     "too_many_workers_clamped",
			policy:   SinglePartitionPolicy(),
			n:        1000,
			workers:  10 * platform.MaxWorkers,
			elemSize: 4,
			expected: Plan{Workers: platform.MaxWorkers, BlockSize: 3, ElementsPerStep: 3 * platform.MaxWorkers, Steps: 1, RemainderStart: 3 * platform.MaxWorkers},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Plan(tt.n, tt.workers, tt.elemSize)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Plan(%d, %d, %d) mismatch (-want +got):\n%s", tt.n, tt.workers, tt.elemSize, diff)
			}
		})
	}
}

func TestBuiltinPolicies(t *testing.T) {
	fixed := FixedBlockPolicy()
	if !fixed.Pipelined {
		t.Error("FixedBlockPolicy should be pipelined")
	}
	if got := fixed.Plan(1<<20, 4, 4).BlockSize; got != 5120 {
		t.Errorf("FixedBlockPolicy block size = %d, want 5120", got)
	}
	// independent of the worker count
	if got := fixed.Plan(1<<20, 16, 4).BlockSize; got != 5120 {
		t.Errorf("FixedBlockPolicy block size with 16 workers = %d, want 5120", got)
	}

	page := PageBlockPolicy(3)
	if page.Pipelined || page.SinglePartition {
		t.Errorf("PageBlockPolicy should be blocked and stepped: %+v", page)
	}
	if want := 3 * platform.PageSize() / 4; page.Plan(1<<20, 4, 4).BlockSize != want {
		t.Errorf("PageBlockPolicy(3) block size = %d, want %d", page.Plan(1<<20, 4, 4).BlockSize, want)
	}
	if def := PageBlockPolicy(0); def.BlockBytes != DefaultPages*platform.PageSize() {
		t.Errorf("PageBlockPolicy(0).BlockBytes = %d, want %d", def.BlockBytes, DefaultPages*platform.PageSize())
	}

	single := SinglePartitionPolicy()
	if p := single.Plan(1001, 10, 4); p.Steps != 1 || p.BlockSize != 100 {
		t.Errorf("SinglePartitionPolicy plan = %v, want one step of 100-element blocks", p)
	}
}

func TestPlanString(t *testing.T) {
	s := Policy{BlockBytes: 32}.Plan(25, 2, 4).String()
	for _, want := range []string{"workers=2", "block=8", "steps=1", "remainder=16"} {
		if !strings.Contains(s, want) {
			t.Errorf("Plan.String() = %q, missing %q", s, want)
		}
	}
}
