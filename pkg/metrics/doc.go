// Package metrics provides a small in-process metrics registry with
// Prometheus text exposition.
//
// Two metric types are supported: counters and histograms, both with label
// support. The registry serves its contents on /metrics in the Prometheus
// text format (version 0.0.4), which is enough for a scrape target without
// pulling in a client library.
//
// Usage:
//
//	reg := metrics.NewRegistry()
//	requests := reg.NewCounter("http_requests_total", "Total HTTP requests.", "path", "status")
//	requests.Inc("/chain", "200")
//
//	mux.Handle("/metrics", reg.Handler())
package metrics
