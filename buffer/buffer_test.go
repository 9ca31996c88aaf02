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

package buffer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/pscan/platform"
)

func TestAllocAligned(t *testing.T) {
	for _, n := range []int{1, 17, 1024, 1 << 20} {
		buf, err := Alloc[uint32](n)
		require.NoError(t, err)

		data := buf.Data()
		require.Len(t, data, n)
		assert.Equal(t, n, buf.Len())

		addr := uintptr(unsafe.Pointer(&data[0]))
		assert.Zerof(t, addr%uintptr(platform.PageSize()), "n=%d: address %#x not page aligned", n, addr)

		for i := range data {
			if data[i] != 0 {
				t.Fatalf("n=%d: data[%d] = %d, want zeroed memory", n, i, data[i])
			}
		}

		// writable end to end
		data[0], data[n-1] = 1, 2
		assert.Equal(t, uint32(2), data[n-1])

		require.NoError(t, buf.Free())
	}
}

func TestAllocUint64(t *testing.T) {
	buf, err := Alloc[uint64](3)
	require.NoError(t, err)
	defer buf.Free()

	assert.Len(t, buf.Data(), 3)
}

func TestAllocEmpty(t *testing.T) {
	buf, err := Alloc[uint32](0)
	require.NoError(t, err)
	assert.Equal(t, 0, buf.Len())
	assert.NoError(t, buf.Free())
}

func TestAllocNegative(t *testing.T) {
	_, err := Alloc[uint32](-1)
	assert.Error(t, err)
}

func TestFreeTwice(t *testing.T) {
	buf, err := Alloc[uint32](10)
	require.NoError(t, err)

	require.NoError(t, buf.Free())
	assert.NoError(t, buf.Free())
	assert.Nil(t, buf.Data())
}
