// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg, observability.Service{Name: "wordfreq"})
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "pipeline.stage.split")
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewStageMetrics(otel.Meter("wordfreq"))
//	metrics.RecordStage(ctx, "split", "slice", "ok", duration, items)
//
// Setup wires both from a Config section and falls back to the global no-op
// providers when observability is disabled. A RunContext ties the span,
// metrics and log run ID of one command invocation together.
package observability
