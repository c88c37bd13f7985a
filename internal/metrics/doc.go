// Package metrics exposes the RADIUS daemon's Prometheus Collector, which
// implements radserver.Metrics.
package metrics
