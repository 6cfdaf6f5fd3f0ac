// Package lambda serves the datagen payload as an AWS Lambda function:
//
//	h := lambda.NewHandler()
//	awslambda.Start(h.Handle)
package lambda

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/yomorun/datagen/payload"
	"github.com/yomorun/datagen/pkg/ylog"
)

const tracerName = "github.com/yomorun/datagen/lambda"

// Handler answers every invocation with a freshly built payload.
type Handler struct {
	builder *payload.Builder
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithBuilder sets the payload builder.
func WithBuilder(b *payload.Builder) Option {
	return func(h *Handler) { h.builder = b }
}

// WithTracerProvider sets the tracer provider of the invocation spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Handler) { h.tracer = tp.Tracer(tracerName) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// NewHandler returns a Handler.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		builder: payload.NewBuilder(),
		tracer:  noop.NewTracerProvider().Tracer(tracerName),
		logger:  ylog.Logger(),
	}
	for _, o := range opts {
		o(h)
	}
	h.logger = h.logger.With("component", "lambda")
	return h
}

// Handle ignores the event and returns the JSON payload as the response body.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	ctx, span := h.tracer.Start(ctx, "invoke", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	var requestID string
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
		span.SetAttributes(attribute.String("faas.invocation_id", requestID))
	}

	p := h.builder.Build()

	body, err := p.Marshal()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.Error("encode payload", "err", err, "request_id", requestID)
		return events.APIGatewayProxyResponse{}, err
	}

	h.logger.Info("invoke", "request_id", requestID, "event_size", len(event), "unique", len(p.Data.Sorted.Unique))

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}
