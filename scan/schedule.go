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

import "github.com/ajroetker/pscan/team"

// runSteps scans the first plan.Steps*plan.ElementsPerStep elements of in
// into out with a team of plan.Workers workers and returns the running total
// of those elements. plan.Steps must be > 0.
func runSteps[T Unsigned](in, out []T, plan Plan, pipelined bool, tbl *carryTable[T]) T {
	t := team.New(plan.Workers)
	if pipelined {
		t.Run(func(id int) {
			pipelinedWorker(t, in, out, plan, tbl, id)
		})
	} else {
		t.Run(func(id int) {
			steppedWorker(t, in, out, plan, tbl, id)
		})
	}
	return tbl.running(plan.Steps)
}

// steppedWorker runs scan, barrier, fold and shift for every step.
func steppedWorker[T Unsigned](t *team.Team, in, out []T, plan Plan, tbl *carryTable[T], id int) {
	last := plan.Workers - 1
	for step := range plan.Steps {
		start := plan.blockStart(step, id)
		end := start + plan.BlockSize

		tbl.publish(step, id, scanBlock(in[start:end], out[start:end], 0))

		t.Wait()

		carry := tbl.carry(step, id)
		if id == last {
			tbl.advance(step, carry)
		}
		shiftBlock(out[start:end], carry)
	}
}

// pipelinedWorker folds and shifts step-1 in the same pass that scans step,
// so each step costs one barrier and one sweep over memory per block.
func pipelinedWorker[T Unsigned](t *team.Team, in, out []T, plan Plan, tbl *carryTable[T], id int) {
	last := plan.Workers - 1

	// step 0: scan only
	start := plan.blockStart(0, id)
	end := start + plan.BlockSize
	tbl.publish(0, id, scanBlock(in[start:end], out[start:end], 0))
	t.Wait()

	for step := 1; step < plan.Steps; step++ {
		prev := start
		start = plan.blockStart(step, id)
		end = start + plan.BlockSize

		carry := tbl.carry(step-1, id)
		if id == last {
			tbl.advance(step-1, carry)
		}

		sum := scanShiftBlock(in[start:end], out[start:end], out[prev:prev+plan.BlockSize], carry)
		tbl.publish(step, id, sum)

		t.Wait()
	}

	// last step: fold and shift only
	carry := tbl.carry(plan.Steps-1, id)
	if id == last {
		tbl.advance(plan.Steps-1, carry)
	}
	shiftBlock(out[start:end], carry)
}
