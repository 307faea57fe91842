// Package metrics provides Prometheus instrumentation for the gateway.
//
// A Collector owns its own registry and exposes counters and histograms for
// request throughput, latency, rate-limit rejections, and AI completion
// calls. Mount Collector.Handler at the configured metrics path to expose
// them for scraping.
package metrics
