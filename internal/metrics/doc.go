// Package metrics provides build observability hooks.
//
// Components receive a Recorder by injection. NoopRecorder is the default
// and does nothing; PrometheusRecorder registers collectors on a registry
// that can be scraped over HTTP (watch mode) or written to a node_exporter
// textfile after a one-shot build.
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	report, err := build.Run(ctx, cfg, build.Options{Recorder: rec})
//	_ = rec.WriteTextfile(cfg.MetricsFile)
package metrics
