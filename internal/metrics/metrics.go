package metrics

import (
	"sync"
	"time"
)

// Package metrics provides a minimal instrumentation interface with a no-op
// default and optional Prometheus-backed implementation enabled via config.

// Recorder defines the metrics surface used across the codebase.
type Recorder interface {
	IncStoreOpTotal(op string, success bool)
	ObserveStoreOpSeconds(op string, success bool, seconds float64)
	IncHTTPRequestTotal(route string, status int)
	ObserveHTTPRequestSeconds(route string, status int, seconds float64)
	AddRowsIngested(n int)
}

// noopRecorder implements Recorder with no-ops.
type noopRecorder struct{}

func (n *noopRecorder) IncStoreOpTotal(string, bool)                {}
func (n *noopRecorder) ObserveStoreOpSeconds(string, bool, float64) {}
func (n *noopRecorder) IncHTTPRequestTotal(string, int)             {}
func (n *noopRecorder) ObserveHTTPRequestSeconds(string, int, float64) {
}
func (n *noopRecorder) AddRowsIngested(int) {}

var (
	recMu    sync.RWMutex
	recorder Recorder = &noopRecorder{}
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	recorder = r
}

// TimeStoreOp is a helper to time store operations.
func TimeStoreOp(op string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		dur := time.Since(start).Seconds()
		Default().IncStoreOpTotal(op, success)
		Default().ObserveStoreOpSeconds(op, success, dur)
	}
}

// TimeHTTPRequest is a helper to time HTTP request handling.
func TimeHTTPRequest(route string) func(status int) {
	start := time.Now()
	return func(status int) {
		dur := time.Since(start).Seconds()
		Default().IncHTTPRequestTotal(route, status)
		Default().ObserveHTTPRequestSeconds(route, status, dur)
	}
}

// Init enables the Prometheus exporter when enabled is true. It starts a
// small HTTP server on addr (default :9090) with endpoints: /metrics (prom)
// and /healthz (200 ok). If the exporter cannot start, the noop recorder
// stays in place.
func Init(enabled bool, addr string) {
	if !enabled {
		return
	}
	if addr == "" {
		addr = ":9090"
	}
	_ = enablePrometheus(addr)
}
