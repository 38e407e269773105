// Package metrics exposes Prometheus metrics for the build pipeline.
//
// The watch daemon mounts Collector.Handler at /metrics when the
// metrics listener is enabled. One-shot CLI builds skip metrics
// entirely; the pipeline treats its metrics hook as optional.
package metrics
