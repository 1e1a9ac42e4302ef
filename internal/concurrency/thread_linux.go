//go:build linux

// File: internal/concurrency/thread_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux implementation via golang.org/x/sys/unix, pure Go (no cgo).

package concurrency

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Niceness bounds accepted by setpriority(2).
const (
	MinPriority = -20
	MaxPriority = 19
)

func currentThreadID() int {
	return unix.Gettid()
}

func setThreadPriority(tid, priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("concurrency: priority %d outside [%d, %d]", priority, MinPriority, MaxPriority)
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, tid, priority); err != nil {
		return fmt.Errorf("concurrency: setpriority tid=%d: %w", tid, err)
	}
	return nil
}

func getThreadPriority(tid int) (int, error) {
	// The raw syscall reports 20-nice to keep the value positive;
	// translate back to the niceness scale.
	rv, err := unix.Getpriority(unix.PRIO_PROCESS, tid)
	if err != nil {
		return 0, fmt.Errorf("concurrency: getpriority tid=%d: %w", tid, err)
	}
	return 20 - rv, nil
}

func pinCurrentThread(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("concurrency: sched_setaffinity cpu=%d: %w", cpuID, err)
	}
	return nil
}
