package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names fuel's tracer and meter.
const InstrumentationName = "github.com/kbukum/fuel"

// Common attribute keys.
const (
	AttrClientName     = attribute.Key("fuel.client")
	AttrRequestMethod  = attribute.Key("http.request.method")
	AttrURLFull        = attribute.Key("url.full")
	AttrServerAddress  = attribute.Key("server.address")
	AttrResponseStatus = attribute.Key("http.response.status_code")
	AttrErrorType      = attribute.Key("error.type")
	AttrOutcome        = attribute.Key("fuel.outcome")
)

// Tracer returns fuel's tracer from tp, or from the global provider when tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(InstrumentationName)
}

// StartClientSpan starts a client-kind span.
func StartClientSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// SetSpanError records err on span and marks the span failed.
func SetSpanError(span trace.Span, err error, errorType string) {
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errorType != "" {
		span.SetAttributes(AttrErrorType.String(errorType))
	}
}

// InjectHeaders writes the trace context of ctx into h using the global propagator.
func InjectHeaders(ctx context.Context, h http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(h))
}
