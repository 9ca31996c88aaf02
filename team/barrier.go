// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package team

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// spinRounds is how many times a waiter yields before parking on the
// condition variable. Scan phases are short, so most rendezvous complete
// while spinning.
const spinRounds = 128

// Barrier is a reusable rendezvous point for a fixed number of parties.
// No party returns from Wait until all parties have arrived, and everything
// a party wrote before Wait is visible to every party after Wait.
type Barrier struct {
	parties int

	arrived    atomic.Int32
	generation atomic.Uint64

	mu   sync.Mutex
	cond sync.Cond
}

// NewBarrier creates a barrier for parties participants. parties < 1 is
// treated as 1.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: max(parties, 1)}
	b.cond = sync.Cond{L: &b.mu}
	return b
}

// Parties returns the number of participants.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until all parties have called Wait for the current generation.
func (b *Barrier) Wait() {
	gen := b.generation.Load()

	if int(b.arrived.Add(1)) == b.parties {
		// Last to arrive: reset for the next generation, then release.
		b.arrived.Store(0)
		b.mu.Lock()
		b.generation.Add(1)
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}

	for range spinRounds {
		if b.generation.Load() != gen {
			return
		}
		runtime.Gosched()
	}

	b.mu.Lock()
	for b.generation.Load() == gen {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
