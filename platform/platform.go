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

// Package platform reports the hardware geometry and the ambient worker count
// that the parallel scans are tuned against: memory page size, cache line
// size, cache capacities and the number of workers a parallel region spawns.
//
// Values are detected once at init. The worker count can be overridden with
// the PSCAN_NUM_THREADS environment variable, the same way OMP_NUM_THREADS
// controls an OpenMP team.
package platform

import (
	"os"
	"runtime"
	"strconv"
	"unsafe"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// MaxWorkers is the largest team size the scans support. Larger requests are
// clamped.
const MaxWorkers = 256

// NumThreadsEnv is the environment variable that overrides the ambient worker
// count.
const NumThreadsEnv = "PSCAN_NUM_THREADS"

// Fallback geometry when detection reports nothing useful.
const (
	defaultCacheLine = int(unsafe.Sizeof(cpu.CacheLinePad{}))
	defaultPageSize  = 4096
)

// Detected at init.
var (
	cacheLineSize int
	l1DataCache   int
	l2Cache       int
	physicalCores int
	cpuName       string
)

func init() {
	detectCacheGeometry()
}

func detectCacheGeometry() {
	cacheLineSize = cpuid.CPU.CacheLine
	if cacheLineSize <= 0 {
		cacheLineSize = defaultCacheLine
	}
	l1DataCache = max(cpuid.CPU.Cache.L1D, 0)
	l2Cache = max(cpuid.CPU.Cache.L2, 0)
	physicalCores = cpuid.CPU.PhysicalCores
	if physicalCores <= 0 {
		physicalCores = runtime.NumCPU()
	}
	cpuName = cpuid.CPU.BrandName
	if cpuName == "" {
		cpuName = runtime.GOARCH
	}
}

// CacheLineSize returns the size of a cache line in bytes.
func CacheLineSize() int {
	return cacheLineSize
}

// L1DataCacheSize returns the per-core L1 data cache size in bytes, or 0 if
// unknown.
func L1DataCacheSize() int {
	return l1DataCache
}

// L2CacheSize returns the L2 cache size in bytes, or 0 if unknown.
func L2CacheSize() int {
	return l2Cache
}

// PhysicalCores returns the number of physical cores.
func PhysicalCores() int {
	return physicalCores
}

// CPUName returns the processor brand string, or GOARCH when it is unknown.
func CPUName() string {
	return cpuName
}

// PageSize returns the memory page size in bytes.
func PageSize() int {
	if n := pageSize(); n > 0 {
		return n
	}
	return defaultPageSize
}

// NumWorkers returns the ambient worker count for a parallel region.
//
// PSCAN_NUM_THREADS takes precedence when it holds a positive integer,
// otherwise GOMAXPROCS is used. The result is always in [1, MaxWorkers].
func NumWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if v, ok := numThreadsEnv(); ok {
		n = v
	}
	return ClampWorkers(n)
}

// ClampWorkers limits n to [1, MaxWorkers].
func ClampWorkers(n int) int {
	return min(max(n, 1), MaxWorkers)
}

func numThreadsEnv() (int, bool) {
	val := os.Getenv(NumThreadsEnv)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
