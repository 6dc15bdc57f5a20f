// Package metrics collects in-process Prometheus metrics for recorded
// usage.
//
// Metrics live in a private registry owned by the Monitor. Nothing is
// exposed over HTTP; callers that want scraping can take the Gatherer
// and mount it themselves.
package metrics
