// Package metrics exports inspector instrumentation to Prometheus.
//
// Inspectors default to inspector.NopRecorder. The watch command swaps in a
// PrometheusRecorder when a metrics address is configured and serves the
// registry through HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	opts.Recorder = metrics.NewPrometheusRecorder(reg)
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
