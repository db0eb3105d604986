// Package server provides the tracewire HTTP server: the demo endpoint
// catalog (root, item lookup, io_task, cpu_task, random_status,
// random_sleep, error_test, chain) plus infra routes (healthz, metrics),
// wrapped in a middleware stack of request-ID tagging, access logging,
// metrics recording and OpenTelemetry server spans.
//
// Every handler is stateless; randomness and sleeping are injectable so the
// latency endpoints stay testable.
package server
