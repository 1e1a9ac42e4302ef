//go:build !linux

// File: internal/concurrency/thread_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without thread priority control.

package concurrency

import "errors"

// Niceness bounds mirrored from the Linux build so callers can
// validate uniformly.
const (
	MinPriority = -20
	MaxPriority = 19
)

var errNotSupported = errors.New("concurrency: not supported on this platform")

func currentThreadID() int { return 0 }

func setThreadPriority(tid, priority int) error { return errNotSupported }

func getThreadPriority(tid int) (int, error) { return 0, errNotSupported }

func pinCurrentThread(cpuID int) error { return errNotSupported }
