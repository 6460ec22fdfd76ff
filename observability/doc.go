// Package observability holds fuel's OpenTelemetry instrumentation: the
// client span helpers, trace context propagation, and request metrics.
// Instruments come from the global providers unless explicit ones are given;
// exporter setup is left to the host application.
//
//	metrics, err := observability.NewMetrics(observability.Meter(nil))
//	ctx, span := observability.StartClientSpan(ctx, observability.Tracer(nil), "GET")
//	defer span.End()
package observability
