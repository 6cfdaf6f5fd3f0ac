package ylog

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// handler supports splitting log stream to common log stream and error log stream.
type handler struct {
	slog.Handler

	// mu guards buf, it is shared with the handlers derived by WithAttrs and WithGroup.
	mu  *sync.Mutex
	buf *bytes.Buffer

	writer    io.Writer
	errWriter io.Writer
}

// NewHandlerFromConfig creates a slog.Handler from conf
func NewHandlerFromConfig(conf Config) slog.Handler {
	buf := new(bytes.Buffer)

	h := bufferedSlogHandler(
		buf,
		conf.Format,
		parseToSlogLevel(conf.Level),
		conf.Verbose,
		conf.DisableTime,
		conf.Output != "",
	)

	return &handler{
		Handler:   h,
		mu:        new(sync.Mutex),
		buf:       buf,
		writer:    parseToWriter(conf, conf.Output, os.Stdout),
		errWriter: parseToWriter(conf, conf.ErrorOutput, os.Stderr),
	}
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.Handler.Handle(ctx, r); err != nil {
		return err
	}

	w := h.writer
	if r.Level >= slog.LevelError {
		w = h.errWriter
	}
	_, err := w.Write(h.buf.Bytes())

	return err
}

func (h *handler) WithAttrs(as []slog.Attr) slog.Handler {
	return &handler{
		mu:        h.mu,
		buf:       h.buf,
		writer:    h.writer,
		errWriter: h.errWriter,
		Handler:   h.Handler.WithAttrs(as),
	}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{
		mu:        h.mu,
		buf:       h.buf,
		writer:    h.writer,
		errWriter: h.errWriter,
		Handler:   h.Handler.WithGroup(name),
	}
}

func bufferedSlogHandler(buf io.Writer, format string, level slog.Level, verbose, disableTime, noColor bool) slog.Handler {
	replaceAttr := func(groups []string, a slog.Attr) slog.Attr {
		if disableTime && a.Key == slog.TimeKey && len(groups) == 0 {
			return slog.Attr{}
		}
		return a
	}

	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(buf, &slog.HandlerOptions{
			AddSource:   verbose,
			Level:       level,
			ReplaceAttr: replaceAttr,
		})
	}

	return tint.NewHandler(buf, &tint.Options{
		AddSource:   verbose,
		Level:       level,
		ReplaceAttr: replaceAttr,
		NoColor:     noColor,
	})
}

// parseToWriter returns a rotating file writer for path, or defaultWriter if path is empty.
func parseToWriter(conf Config, path string, defaultWriter io.Writer) io.Writer {
	if path == "" {
		return defaultWriter
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    conf.MaxSize,
		MaxBackups: conf.MaxBackups,
	}
}
