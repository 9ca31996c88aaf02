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

package harness

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/ajroetker/pscan/scan"
	"github.com/ajroetker/pscan/team"
)

// randomChunk is the number of words drawn from the XOF per read.
const randomChunk = 1024

// Fill sets every element of data to v, splitting the slice statically
// across t so that each worker touches the pages it will later scan.
func Fill(t *team.Team, data []uint32, v uint32) {
	t.ParallelFor(len(data), func(start, end int) {
		for i := start; i < end; i++ {
			data[i] = v
		}
	})
}

// Iota returns [0, 1, ..., n-1], the exclusive scan of n ones.
func Iota(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// Reference returns the serial exclusive scan of in.
func Reference(in []uint32) []uint32 {
	out := make([]uint32, len(in))
	scan.ExclusiveSerial(in, out, len(in))
	return out
}

// RandomFill fills data with little-endian words from the SHAKE128 stream of
// seed. The same seed always yields the same sequence.
func RandomFill(data []uint32, seed []byte) {
	h := sha3.NewShake128()
	h.Write(seed)

	var buf [4 * randomChunk]byte
	for len(data) > 0 {
		words := min(len(data), randomChunk)
		h.Read(buf[:4*words])
		for i := range words {
			data[i] = binary.LittleEndian.Uint32(buf[4*i:])
		}
		data = data[words:]
	}
}
