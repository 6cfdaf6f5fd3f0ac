package server

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/yomorun/datagen/payload"
	"github.com/yomorun/datagen/pkg/ylog"
)

// Option is a function that applies a datagen server option.
type Option func(o *options)

// options are the options for datagen server.
type options struct {
	builder        *payload.Builder
	tracerProvider trace.TracerProvider
	logger         *slog.Logger
}

// WithBuilder sets the payload builder, the default one is payload.NewBuilder().
func WithBuilder(b *payload.Builder) Option {
	return func(o *options) {
		o.builder = b
	}
}

// WithTracerProvider sets the tracer provider of the request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithLogger sets the logger of the server.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// newOptions creates a new options for datagen server.
func newOptions(opts ...Option) *options {
	options := &options{}

	for _, o := range opts {
		o(options)
	}

	if options.builder == nil {
		options.builder = payload.NewBuilder()
	}
	if options.tracerProvider == nil {
		options.tracerProvider = noop.NewTracerProvider()
	}
	if options.logger == nil {
		options.logger = ylog.Logger()
	}

	return options
}
