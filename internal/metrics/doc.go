// Package metrics provides render and check metrics for notesite.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	svc := build.NewService()                      // NoopRecorder
//	svc = svc.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A CLI run has no scrape endpoint; the registry is written once in the node
// exporter textfile format with WriteTextfile.
package metrics
