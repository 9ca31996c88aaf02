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

// Package buffer allocates page-aligned element buffers for the scan
// drivers. Pages are mapped lazily, so the first worker to write a page
// decides where it lives.
package buffer

import (
	"fmt"
	"unsafe"

	"github.com/ajroetker/pscan/platform"
	"github.com/ajroetker/pscan/scan"
)

// Buffer is a page-aligned slice of n elements. Call Free when done; the
// memory may live outside the Go heap.
type Buffer[T scan.Unsigned] struct {
	data []T
	raw  []byte // backing mapping, nil once freed
}

// Alloc returns a zeroed, page-aligned buffer of n elements.
func Alloc[T scan.Unsigned](n int) (*Buffer[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("buffer: negative length %d", n)
	}
	if n == 0 {
		return &Buffer[T]{data: []T{}}, nil
	}

	var zero T
	size := n * int(unsafe.Sizeof(zero))
	raw, err := allocPages(size, platform.PageSize())
	if err != nil {
		return nil, fmt.Errorf("buffer: allocate %d bytes: %w", size, err)
	}

	return &Buffer[T]{
		data: unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n),
		raw:  raw,
	}, nil
}

// Data returns the elements. The slice is invalid after Free.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Free releases the memory. Calling Free more than once is safe.
func (b *Buffer[T]) Free() error {
	if b.raw == nil {
		return nil
	}
	raw := b.raw
	b.raw = nil
	b.data = nil
	if err := freePages(raw); err != nil {
		return fmt.Errorf("buffer: free: %w", err)
	}
	return nil
}
