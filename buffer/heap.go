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

//go:build !(linux || darwin || freebsd)

package buffer

import "unsafe"

// allocPages over-allocates a Go slice and returns the page-aligned window of
// size bytes inside it.
func allocPages(size, pageSize int) ([]byte, error) {
	raw := make([]byte, size+pageSize)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(pageSize)); rem != 0 {
		off = pageSize - rem
	}
	return raw[off : off+size : off+size], nil
}

func freePages([]byte) error {
	return nil
}
