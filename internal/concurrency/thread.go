// File: internal/concurrency/thread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral entry points. Platform-specific implementations are
// located in separate files (thread_linux.go, thread_stub.go) guarded
// by build tags.

package concurrency

// CurrentThreadID returns the OS identifier of the calling thread, or
// 0 where thread identification is not supported. Meaningful only
// while the caller stays locked to its OS thread.
func CurrentThreadID() int {
	return currentThreadID()
}

// SetThreadPriority adjusts the OS scheduling priority (niceness on
// Linux) of the thread identified by tid.
func SetThreadPriority(tid, priority int) error {
	return setThreadPriority(tid, priority)
}

// GetThreadPriority reports the OS scheduling priority of the thread
// identified by tid.
func GetThreadPriority(tid int) (int, error) {
	return getThreadPriority(tid)
}

// PinCurrentThread binds the calling thread to a single logical CPU.
// The caller must already be locked to its OS thread.
func PinCurrentThread(cpuID int) error {
	return pinCurrentThread(cpuID)
}
