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

// scanBlock writes the exclusive scan of in, seeded with init, to out and
// returns init plus the sum of in.
//
//	out[i] = init + in[0] + ... + in[i-1]
//
// out must be at least as long as in. Each in[i] is read before out[i] is
// written, so in and out may be the same slice.
func scanBlock[T Unsigned](in, out []T, init T) T {
	n := len(in)
	out = out[:n]
	sum := init
	i := 0

	for ; i+4 <= n; i += 4 {
		a, b, c, d := in[i], in[i+1], in[i+2], in[i+3]
		out[i] = sum
		sum += a
		out[i+1] = sum
		sum += b
		out[i+2] = sum
		sum += c
		out[i+3] = sum
		sum += d
	}

	for ; i < n; i++ {
		v := in[i]
		out[i] = sum
		sum += v
	}
	return sum
}

// shiftBlock adds carry to every element of out.
func shiftBlock[T Unsigned](out []T, carry T) {
	if carry == 0 {
		return
	}
	for i := range out {
		out[i] += carry
	}
}

// scanShiftBlock is scanBlock seeded with 0, fused with shiftBlock of a
// second, disjoint block of the same length. It returns the sum of in.
func scanShiftBlock[T Unsigned](in, out, shifted []T, carry T) T {
	n := len(in)
	out = out[:n]
	shifted = shifted[:n]

	var sum T
	for i := range n {
		v := in[i]
		out[i] = sum
		sum += v
		shifted[i] += carry
	}
	return sum
}
