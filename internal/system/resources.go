// Package system sizes work to the host it runs on.
package system

import (
	"log"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// pageWorkingSet is the memory one in-flight page is expected to need: a
// 300 DPI letter page decoded to RGBA, plus the packed raster, the sample
// grid and the cropped copy.
const pageWorkingSet = 160 << 20

// Logf reports host probing failures. Replace it to mute or capture output.
var Logf = log.Printf

// DefaultWorkers returns how many pages to process at once: one per logical
// CPU, reduced so the working set fits in available memory. The result is at
// least 1.
func DefaultWorkers() int {
	workers, err := cpu.Counts(true)
	if err != nil || workers <= 0 {
		if err != nil {
			Logf("cpu count unavailable, using GOMAXPROCS: %v", err)
		}
		workers = runtime.GOMAXPROCS(0)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		Logf("memory stats unavailable: %v", err)
		return clampWorkers(workers, 0)
	}
	return clampWorkers(workers, vm.Available)
}

// clampWorkers caps workers by available bytes. Zero available means
// unknown and leaves workers unchanged.
func clampWorkers(workers int, available uint64) int {
	if available > 0 {
		if byMem := int(available / pageWorkingSet); byMem < workers {
			workers = byMem
		}
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
