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
	"unsafe"

	"github.com/ajroetker/pscan/platform"
)

// Unsigned is the set of element types a scan accepts.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Engine runs exclusive scans of T with a fixed Policy.
//
// An Engine holds no per-call state; it is safe to call from several
// goroutines at once, each call forking its own team.
type Engine[T Unsigned] struct {
	policy  Policy
	workers int
}

// New creates an engine for policy with a team of workers workers.
// If workers <= 0, the team size is read from platform.NumWorkers at the
// start of every call.
func New[T Unsigned](policy Policy, workers int) *Engine[T] {
	return &Engine[T]{
		policy:  policy,
		workers: workers,
	}
}

// Policy returns the engine's block assignment policy.
func (e *Engine[T]) Policy() Policy {
	return e.policy
}

// Workers returns the team size the next call will use.
func (e *Engine[T]) Workers() int {
	if e.workers <= 0 {
		return platform.NumWorkers()
	}
	return platform.ClampWorkers(e.workers)
}

// Plan returns the decomposition a call over n elements will use.
func (e *Engine[T]) Plan(n int) Plan {
	return e.policy.Plan(n, e.Workers(), elemSize[T]())
}

// Exclusive writes the exclusive prefix sum of in[:n] to out[:n]:
// out[0] = 0 and out[i] = in[0] + ... + in[i-1], wrapping on overflow.
//
// in and out must hold at least n elements; they may be the same slice.
func (e *Engine[T]) Exclusive(in, out []T, n int) {
	in, out = in[:n], out[:n]
	plan := e.Plan(n)

	var seed T
	if plan.Steps > 0 {
		tbl := newCarryTable[T](plan.Workers)
		seed = runSteps(in, out, plan, e.policy.Pipelined, tbl)
	}

	// remainder
	rs := plan.RemainderStart
	scanBlock(in[rs:], out[rs:], seed)
}

// ExclusiveInPlace replaces data[:n] with its exclusive prefix sum.
func (e *Engine[T]) ExclusiveInPlace(data []T, n int) {
	e.Exclusive(data, data, n)
}

func elemSize[T Unsigned]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
