// Package metrics provides run metrics for the conversion pipeline.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites. When a textfile path is
// configured the CLI swaps in a PrometheusRecorder and writes its registry in the
// node_exporter textfile format once the run finishes.
package metrics
