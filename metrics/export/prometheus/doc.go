// Package prometheus bridges ironsession counters into a
// prometheus/client_golang registry.
//
// The [Collector] reads a MetricsSnapshot on every scrape, so it carries no
// state of its own and any number of collectors may observe one Metrics set.
package prometheus
