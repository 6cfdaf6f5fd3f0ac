package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	datagen "github.com/yomorun/datagen/lambda"
	"github.com/yomorun/datagen/pkg/config"
	"github.com/yomorun/datagen/pkg/trace"
	"github.com/yomorun/datagen/pkg/ylog"
)

func main() {
	ctx := context.Background()

	tracing, err := config.TracingFromEnv()
	if err != nil {
		ylog.Error("parse tracing config", err)
		os.Exit(1)
	}

	tp, shutdown, err := trace.NewTracerProvider(ctx, config.DefaultName, tracing)
	if err != nil {
		ylog.Error("create tracer provider", err)
		os.Exit(1)
	}
	defer shutdown(ctx)

	h := datagen.NewHandler(datagen.WithTracerProvider(tp), datagen.WithLogger(ylog.Logger()))
	lambda.Start(h.Handle)
}
