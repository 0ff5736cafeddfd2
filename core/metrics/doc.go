// Package metrics defines the events recorded for observability of the
// ranking service. Sinks like PromSink and InfluxSink (see infra/metrics)
// record rankings and absorbed upstream failures and can be combined with
// NewMultiSink. NewMetricsSink returns a MultiSink automatically when more
// than one sink is configured.
package metrics
