// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package team provides a fixed-size fork-join worker team for data-parallel
// kernels. Unlike a persistent pool, a Team spawns its workers for the
// duration of one Run call and joins them before Run returns. Every worker
// has a stable zero-based id and can rendezvous with the rest of the team on
// a shared Barrier.
//
// Usage:
//
//	t := team.New(runtime.GOMAXPROCS(0))
//	t.Run(func(id int) {
//	    phaseOne(id)
//	    t.Wait() // every worker finished phase one
//	    phaseTwo(id)
//	})
//
// A Team is not safe for concurrent Run calls; create one per parallel
// region.
package team

import (
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/pscan/platform"
)

// Team is a fixed-size group of workers forked and joined per Run.
type Team struct {
	size    int
	barrier *Barrier
}

// New creates a team of size workers.
// If size <= 0, uses platform.NumWorkers. Sizes above platform.MaxWorkers
// are clamped.
func New(size int) *Team {
	if size <= 0 {
		size = platform.NumWorkers()
	}
	size = platform.ClampWorkers(size)

	return &Team{
		size:    size,
		barrier: NewBarrier(size),
	}
}

// Size returns the number of workers in the team.
func (t *Team) Size() int {
	return t.size
}

// Run executes fn once per worker id in [0, Size()) concurrently and returns
// after all of them have returned. Worker 0 runs on the calling goroutine.
func (t *Team) Run(fn func(id int)) {
	if t.size == 1 {
		fn(0)
		return
	}

	var g errgroup.Group
	for id := 1; id < t.size; id++ {
		g.Go(func() error {
			fn(id)
			return nil
		})
	}
	fn(0)
	_ = g.Wait()
}

// Wait blocks the calling worker until every worker of the team has called
// Wait for the current phase. It must be called by all workers the same
// number of times, from inside Run.
func (t *Team) Wait() {
	t.barrier.Wait()
}

// ParallelFor splits [0, n) into Size() contiguous chunks and executes fn on
// each from a separate worker, like a static OpenMP schedule. Blocks until
// all chunks are done.
//
// fn receives (start, end) indices where work should process [start, end).
func (t *Team) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	// Don't use more workers than items
	workers := min(t.size, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			break
		}
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
