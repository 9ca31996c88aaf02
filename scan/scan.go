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

// Func is the signature shared by every scan entry point: it writes the
// exclusive prefix sum of in[:n] to out[:n].
type Func[T Unsigned] func(in, out []T, n int)

// ExclusiveSerial is the single-threaded reference scan.
//
// Example:
//
//	in := []uint32{3, 1, 4, 1, 5}
//	out := make([]uint32, len(in))
//	ExclusiveSerial(in, out, len(in))
//	// out = [0, 3, 4, 8, 9]
func ExclusiveSerial[T Unsigned](in, out []T, n int) {
	scanBlock(in[:n], out[:n], 0)
}

// ExclusiveSerialInPlace is the single-threaded reference scan over data.
func ExclusiveSerialInPlace[T Unsigned](data []T, n int) {
	var sum T
	for i, v := range data[:n] {
		data[i] = sum
		sum += v
	}
}

// ExclusivePageBlock scans with PageBlockPolicy(DefaultPages) and the
// ambient worker count.
func ExclusivePageBlock[T Unsigned](in, out []T, n int) {
	New[T](PageBlockPolicy(DefaultPages), 0).Exclusive(in, out, n)
}

// ExclusivePageBlockInPlace is ExclusivePageBlock with out aliasing in.
func ExclusivePageBlockInPlace[T Unsigned](data []T, n int) {
	New[T](PageBlockPolicy(DefaultPages), 0).ExclusiveInPlace(data, n)
}

// ExclusiveFixedBlock scans with FixedBlockPolicy and the ambient worker
// count.
func ExclusiveFixedBlock[T Unsigned](in, out []T, n int) {
	New[T](FixedBlockPolicy(), 0).Exclusive(in, out, n)
}

// ExclusiveSinglePartition scans with SinglePartitionPolicy and the ambient
// worker count.
func ExclusiveSinglePartition[T Unsigned](in, out []T, n int) {
	New[T](SinglePartitionPolicy(), 0).Exclusive(in, out, n)
}
