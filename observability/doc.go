// Package observability bootstraps OpenTelemetry tracing and metrics and
// defines the instruments recorded by the ranking pipeline.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultConfig("airlinerank"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanRankingCycle)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultConfig("airlinerank"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewRankingMetrics(observability.Meter("airlinerank"))
//	metrics.RecordCycle(ctx, "AMS", observability.StatusOK, 3, duration)
//
// Until InitTracer/InitMeter run, the global providers are no-ops.
package observability
