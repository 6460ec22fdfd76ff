package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricRequestTotal    = "http.client.request.total"
	MetricRequestDuration = "http.client.request.duration"
	MetricRequestActive   = "http.client.request.active"
)

// Meter returns fuel's meter from mp, or from the global provider when mp is nil.
func Meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return mp.Meter(InstrumentationName)
}

// Metrics holds the HTTP client instruments. A nil *Metrics records nothing.
type Metrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestActive   metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestTotal, err := meter.Int64Counter(MetricRequestTotal,
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRequestTotal, err)
	}

	requestDuration, err := meter.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("Duration of HTTP client requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRequestDuration, err)
	}

	requestActive, err := meter.Int64UpDownCounter(MetricRequestActive,
		metric.WithDescription("Number of in-flight HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricRequestActive, err)
	}

	return &Metrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestActive:   requestActive,
	}, nil
}

// RecordRequestStart increments the in-flight request count.
func (m *Metrics) RecordRequestStart(ctx context.Context, client, method string) {
	if m == nil {
		return
	}
	m.requestActive.Add(ctx, 1, metric.WithAttributes(
		AttrClientName.String(client),
		AttrRequestMethod.String(method),
	))
}

// RecordRequestEnd decrements in-flight requests and records the finished
// request. outcome is "ok" or an error code; status is zero when no response
// arrived.
func (m *Metrics) RecordRequestEnd(ctx context.Context, client, method, outcome string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	base := []attribute.KeyValue{
		AttrClientName.String(client),
		AttrRequestMethod.String(method),
	}
	m.requestActive.Add(ctx, -1, metric.WithAttributes(base...))

	attrs := append(base, AttrOutcome.String(outcome))
	if status != 0 {
		attrs = append(attrs, AttrResponseStatus.Int(status))
	}
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
