package lambda

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/yomorun/datagen/payload"
)

func TestHandle(t *testing.T) {
	h := NewHandler(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	events := []json.RawMessage{
		nil,
		json.RawMessage(`{}`),
		json.RawMessage(`{"httpMethod":"GET","path":"/data"}`),
		json.RawMessage(`"anything"`),
	}

	for _, event := range events {
		resp, err := h.Handle(context.Background(), event)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]string{"Content-Type": "application/json"}, resp.Headers)

		var p payload.Payload
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &p))
		assert.NoError(t, p.Validate())
	}
}

func TestHandleBodyIsString(t *testing.T) {
	builder := payload.NewBuilder(payload.WithRand(rand.New(rand.NewSource(9))))
	h := NewHandler(WithBuilder(builder), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	resp, err := h.Handle(context.Background(), nil)
	require.NoError(t, err)

	buf, err := json.Marshal(resp)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf, &out))
	assert.IsType(t, "", out["body"])
	assert.Equal(t, float64(200), out["statusCode"])
}

func TestHandleSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder))

	h := NewHandler(WithTracerProvider(tp), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "aws-req-1"})
	_, err := h.Handle(ctx, json.RawMessage(`{}`))
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "invoke", spans[0].Name())

	var invocationID string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "faas.invocation_id" {
			invocationID = kv.Value.AsString()
		}
	}
	assert.Equal(t, "aws-req-1", invocationID)
}
