package telemetry

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	protocolNone = ""
	protocolGrpc = "grpc"
	protocolHttp = "http"
)

// exportTimeout bounds dialing a collector, a scrape should not wait on it.
const exportTimeout = time.Second * 3

type otlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

// protocol picks grpc over http, an empty config exports nothing.
func (c otlpConnConfig) protocol() string {
	switch {
	case c.GrpcEndpoint != "":
		return protocolGrpc
	case c.HttpEndpoint != "":
		return protocolHttp
	default:
		return protocolNone
	}
}

type otlpConfig struct {
	Traces  otlpConnConfig `json:"traces"`
	Metrics otlpConnConfig `json:"metrics"`
	// 0 keeps every metric point until Shutdown, a run is usually over
	// before the first push.
	MetricIntervalSeconds int `json:"metric_interval_seconds"`
}

type config struct {
	Otlp otlpConfig `json:"otlp"`
}

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "devel"
	}
	return info.Main.Version
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(buildVersion()),
		),
	)
}

// newTraceProvider returns nil when no trace endpoint is configured.
func newTraceProvider(ctx context.Context, r *resource.Resource, c otlpConnConfig) (*trace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	var exporter trace.SpanExporter
	var err error
	switch c.protocol() {
	case protocolGrpc:
		exporter, err = otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(c.GrpcEndpoint),
			otlptracegrpc.WithHeaders(c.Headers),
		)
	case protocolHttp:
		exporter, err = otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(c.HttpEndpoint),
			otlptracehttp.WithHeaders(c.Headers),
		)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("trace export enabled", "protocol", c.protocol())

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter, trace.WithBatchTimeout(time.Second)),
		trace.WithResource(r),
	), nil
}

func metricInterval(seconds int) time.Duration {
	if seconds <= 0 {
		// longer than any run, Shutdown does the only collection
		return time.Hour
	}
	return time.Duration(seconds) * time.Second
}

// newMetricProvider returns nil when no metric endpoint is configured.
func newMetricProvider(ctx context.Context, r *resource.Resource, c otlpConfig) (*metric.MeterProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	var exporter metric.Exporter
	var err error
	switch c.Metrics.protocol() {
	case protocolGrpc:
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(c.Metrics.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(c.Metrics.Headers),
		)
	case protocolHttp:
		exporter, err = otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(c.Metrics.HttpEndpoint),
			otlpmetrichttp.WithHeaders(c.Metrics.Headers),
		)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("metric export enabled", "protocol", c.Metrics.protocol())

	reader := metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(metricInterval(c.MetricIntervalSeconds)),
	)
	return metric.NewMeterProvider(
		metric.WithReader(reader),
		metric.WithResource(r),
	), nil
}
