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

import "golang.org/x/sys/cpu"

// carryCell holds one block sum. The trailing pad keeps the sums of
// neighbouring cells on different cache lines.
type carryCell[T Unsigned] struct {
	sum T
	_   cpu.CacheLinePad
}

// carryTable is the double-buffered table of block sums shared by a team.
//
// Row step%2 receives the block sums of step; cell [workers] of a row holds
// the running total through the last step that used that row. Each cell has
// exactly one writer per step and is read only after the barrier that follows
// the write, so a worker can publish into one row while slower workers still
// read the other.
type carryTable[T Unsigned] struct {
	workers int
	rows    [2][]carryCell[T]
}

func newCarryTable[T Unsigned](workers int) *carryTable[T] {
	cells := make([]carryCell[T], 2*(workers+1))
	return &carryTable[T]{
		workers: workers,
		rows:    [2][]carryCell[T]{cells[:workers+1], cells[workers+1:]},
	}
}

// publish stores worker id's block sum for step.
func (c *carryTable[T]) publish(step, id int, sum T) {
	c.rows[step&1][id].sum = sum
}

// blockSum returns the block sum worker id published for step.
func (c *carryTable[T]) blockSum(step, id int) T {
	return c.rows[step&1][id].sum
}

// carry returns the offset of worker id's block in step: the running total
// before step plus the block sums of workers 0..id-1 in step.
func (c *carryTable[T]) carry(step, id int) T {
	sum := c.rows[(step+1)&1][c.workers].sum
	for _, cell := range c.rows[step&1][:id] {
		sum += cell.sum
	}
	return sum
}

// advance stores the running total through step. Only the last worker calls
// it, passing its own carry for step.
func (c *carryTable[T]) advance(step int, lastCarry T) {
	row := c.rows[step&1]
	row[c.workers].sum = lastCarry + row[c.workers-1].sum
}

// running returns the running total after steps steps; 0 when steps is 0.
func (c *carryTable[T]) running(steps int) T {
	return c.rows[(steps+1)&1][c.workers].sum
}
