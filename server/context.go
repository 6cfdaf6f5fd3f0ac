package server

import "context"

type requestIDContextKey struct{}

// WithRequestIDContext adds the request id to the request context
func WithRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// FromRequestIDContext returns the request id from the request context
func FromRequestIDContext(ctx context.Context) string {
	val, ok := ctx.Value(requestIDContextKey{}).(string)
	if !ok {
		return ""
	}
	return val
}
