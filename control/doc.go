// control/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package control is the operational plane of the library: dynamic
// configuration with reload listeners and YAML loading, Prometheus
// metrics over live pools, and debug probes for internal inspection.
package control
