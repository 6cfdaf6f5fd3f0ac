// Package trace sets up OpenTelemetry tracing for datagen.
package trace

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/yomorun/datagen/pkg/config"
)

// ShutdownFunc flushes and stops a tracer provider.
type ShutdownFunc func(ctx context.Context) error

// NewTracerProvider returns a TracerProvider exporting spans over OTLP/HTTP to conf.Endpoint.
// It returns a noop TracerProvider if conf.Endpoint is empty.
func NewTracerProvider(ctx context.Context, service string, conf config.Tracing) (trace.TracerProvider, ShutdownFunc, error) {
	if conf.Endpoint == "" {
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(conf.Endpoint)}
	if conf.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}

	tp := newSDKProvider(service, tracesdk.WithBatcher(exp))

	shutdown := func(ctx context.Context) error {
		// Do not make the application hang when it is shutdown.
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return tp, shutdown, nil
}

// SetGlobal registers tp as the global TracerProvider with W3C trace context propagation.
func SetGlobal(tp trace.TracerProvider) {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
}

func newSDKProvider(service string, opts ...tracesdk.TracerProviderOption) *tracesdk.TracerProvider {
	opts = append(opts,
		tracesdk.WithSampler(tracesdk.AlwaysSample()),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	return tracesdk.NewTracerProvider(opts...)
}
