// File: barrier/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package barrier implements a reusable counting rendezvous.
//
// A Barrier holds a signed counter; any mutation that brings the
// counter to exactly zero releases every blocked party. Contributions
// come in a fire-and-forget form (Pass, Increment) and a blocking form
// (Wait, IncrementAndWait), all sharing one adjust-and-wake routine.
// The pool uses a barrier for its worker-creation rendezvous; the
// timed variant doubles as a bounded sleep.
package barrier
