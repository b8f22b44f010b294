// Package metric provides Prometheus metrics for chainmap tools.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, HTTP handler and text dump
//   - collector.go: Collector reporting the shape of live tables
//
// Metrics include:
//
//   - Rehash counts and durations per table and reason
//   - Operation counters per table, operation and result
//   - Size, capacity, load factor and bucket occupancy gauges
//
// Metrics are exposed at /metrics in Prometheus format while the CLI runs
// in watch mode, or dumped as text after a replay.
package metric
