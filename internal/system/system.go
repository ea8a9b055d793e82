// Package system probes the host to pick sane defaults for batch work.
package system

import (
	"log"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// lowMemoryFloor is the available-memory threshold under which concurrency
// collapses to one: decoded pages can run hundreds of megabytes each.
const lowMemoryFloor = 1 << 30

// DefaultConcurrency derives a detection concurrency limit from the host:
// half the logical CPUs, clamped to [1, 5], dropped to 1 under memory
// pressure. Probe failures fall back to 2.
func DefaultConcurrency() int {
	limit := 2
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		limit = count / 2
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 5 {
		limit = 5
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm.Available < lowMemoryFloor {
		limit = 1
	}
	return limit
}

// InitResourceLimits raises the open-file limit so large directory batches
// do not exhaust descriptors mid-run.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("could not raise file limit: %v", err)
	}
}
