package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yomorun/datagen/payload"
	"github.com/yomorun/datagen/pkg/id"
)

const (
	// DataPath serves a freshly built payload.
	DataPath = "/data"
	// HealthPath reports the server is up.
	HealthPath = "/healthz"

	// RequestIDHeader is read to correlate the request log with the caller.
	RequestIDHeader = "X-Request-Id"

	tracerName = "github.com/yomorun/datagen/server"
)

// NewRouter returns the http handler of datagen, it serves:
//
//	GET /data
//	GET /healthz
func NewRouter(opts ...Option) http.Handler {
	options := newOptions(opts...)

	h := &dataHandler{
		builder: options.builder,
		tracer:  options.tracerProvider.Tracer(tracerName),
		logger:  options.logger,
	}

	r := mux.NewRouter()
	r.HandleFunc(DataPath, h.ServeData).Methods(http.MethodGet)
	r.HandleFunc(HealthPath, HandleHealth).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		RespondWithError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.Use(decorateReqContext(options.logger))

	return r
}

type dataHandler struct {
	builder *payload.Builder
	tracer  trace.Tracer
	logger  *slog.Logger
}

// ServeData is the handler for GET /data
func (h *dataHandler) ServeData(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GET "+DataPath, trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	p := h.builder.Build()
	span.SetAttributes(
		attribute.Int("payload.unique", len(p.Data.Sorted.Unique)),
		attribute.String("request.id", FromRequestIDContext(ctx)),
	)

	if h.logger.Enabled(ctx, slog.LevelDebug) {
		if err := p.Validate(); err != nil {
			h.logger.Warn("invalid payload", "err", err, "request_id", FromRequestIDContext(ctx))
		}
	}

	buf, err := p.Marshal()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.Error("encode payload", "err", err, "request_id", FromRequestIDContext(ctx))
		RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf)
}

// HandleHealth is the handler for GET /healthz
func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// RespondWithError writes a json error body with code.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// decorateReqContext injects a request id into the request context and logs every request.
func decorateReqContext(logger *slog.Logger) mux.MiddlewareFunc {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = id.New()
			}
			ctx := WithRequestIDContext(r.Context(), requestID)

			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			handler.ServeHTTP(rw, r.WithContext(ctx))

			logRequest(ctx, logger, r, rw.status, time.Since(start))
		})
	}
}

func logRequest(ctx context.Context, logger *slog.Logger, r *http.Request, status int, duration time.Duration) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(ctx, level, "request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"duration", duration,
		"request_id", FromRequestIDContext(ctx),
	)
}

// statusRecorder records the status code written to the underlying ResponseWriter.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
