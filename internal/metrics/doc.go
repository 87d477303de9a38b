// Package metrics records pipeline pass metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never require nil checks at call sites:
//
//	p := pipeline.New(pipeline.Options{Recorder: metrics.NoopRecorder{}})
//
// PrometheusRecorder registers histograms and counters on a registry. The CLI
// has no listener; when a metrics file is configured it writes the registry in
// the Prometheus text format (node_exporter textfile collector) on exit.
package metrics
