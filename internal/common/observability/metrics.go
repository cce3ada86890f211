package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records OpenTelemetry instruments exported through Prometheus.
// A zero value is safe to use and records nothing.
type Observability struct {
	meterProvider     *metric.MeterProvider
	utteranceCounter  otelmetric.Int64Counter
	utteranceDuration otelmetric.Float64Histogram
	jobCounter        otelmetric.Int64Counter
	jobDuration       otelmetric.Float64Histogram
}

// New registers the exporter with the default Prometheus registerer.
func New(serviceName string) *Observability {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the exporter with reg.
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Observability {
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	utteranceCounter, _ := meter.Int64Counter(
		"utterances.processed",
		otelmetric.WithDescription("Number of utterances interpreted"),
	)
	utteranceDuration, _ := meter.Float64Histogram(
		"utterances.duration",
		otelmetric.WithDescription("Utterance processing duration"),
		otelmetric.WithUnit("ms"),
	)
	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:     provider,
		utteranceCounter:  utteranceCounter,
		utteranceDuration: utteranceDuration,
		jobCounter:        jobCounter,
		jobDuration:       jobDuration,
	}
}

func (o *Observability) RecordUtterance(ctx context.Context, intent string, duration time.Duration) {
	if o == nil || o.utteranceCounter == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("intent", intent))
	o.utteranceCounter.Add(ctx, 1, attrs)
	o.utteranceDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (o *Observability) RecordJob(ctx context.Context, taskType, status string, duration time.Duration) {
	if o == nil || o.jobCounter == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	)
	o.jobCounter.Add(ctx, 1, attrs)
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
