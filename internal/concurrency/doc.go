// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package concurrency holds the platform-specific thread plumbing the
// pool relies on: current-thread identification, OS scheduling
// priority pass-throughs and CPU pinning. Linux builds go through
// golang.org/x/sys/unix; other platforms get stubs that report
// unsupported.
package concurrency
