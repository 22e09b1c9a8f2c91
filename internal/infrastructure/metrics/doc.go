// Package metrics exposes expvar-published counters for the flowspec
// validation flow (checks run, findings by kind, shape-gate rejections).
// It intentionally avoids external dependencies and is consumed by the
// optional flowspec-server for /debug/vars and /metrics endpoints.
package metrics
