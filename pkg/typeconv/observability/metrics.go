package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records typeconv metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordConversion records one façade conversion with its outcome
	// ("converted", "identity", "not_found", "ambiguous", "failed") and duration.
	RecordConversion(ctx context.Context, from, to, outcome string, duration time.Duration)

	// RecordRegistration records a registry Add, successful or not.
	RecordRegistration(ctx context.Context, signature string, err error)

	// RecordRegistrySize records the record count after a mutation.
	RecordRegistrySize(ctx context.Context, registryID string, size int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	conversions        metric.Int64Counter
	conversionLatency  metric.Float64Histogram
	registrations      metric.Int64Counter
	registrationErrors metric.Int64Counter
	registrySize       metric.Int64Gauge
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("typeconv")

	conversions, err := meter.Int64Counter("typeconv.conversions",
		metric.WithDescription("Number of conversions requested through a converter"),
	)
	if err != nil {
		return nil, err
	}

	conversionLatency, err := meter.Float64Histogram("typeconv.conversion.latency_ms",
		metric.WithDescription("Conversion latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	registrations, err := meter.Int64Counter("typeconv.registrations",
		metric.WithDescription("Number of converter registrations"),
	)
	if err != nil {
		return nil, err
	}

	registrationErrors, err := meter.Int64Counter("typeconv.registration.errors",
		metric.WithDescription("Number of rejected converter registrations"),
	)
	if err != nil {
		return nil, err
	}

	registrySize, err := meter.Int64Gauge("typeconv.registry.size",
		metric.WithDescription("Number of converters held by a registry"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		conversions:        conversions,
		conversionLatency:  conversionLatency,
		registrations:      registrations,
		registrationErrors: registrationErrors,
		registrySize:       registrySize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordConversion records a conversion.
func (m *otelMetrics) RecordConversion(ctx context.Context, from, to, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
		attribute.String("outcome", outcome),
	)
	m.conversions.Add(ctx, 1, attrs)
	m.conversionLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordRegistration records a registration attempt.
func (m *otelMetrics) RecordRegistration(ctx context.Context, signature string, err error) {
	attrs := metric.WithAttributes(attribute.String("signature", signature))
	if err != nil {
		m.registrationErrors.Add(ctx, 1, attrs)
		return
	}
	m.registrations.Add(ctx, 1, attrs)
}

// RecordRegistrySize records the current registry size.
func (m *otelMetrics) RecordRegistrySize(ctx context.Context, registryID string, size int64) {
	m.registrySize.Record(ctx, size, metric.WithAttributes(attribute.String("registry_id", registryID)))
}
