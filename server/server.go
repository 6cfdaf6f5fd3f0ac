// Package server serves the datagen payload over http.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/yomorun/datagen/pkg/config"
)

// Server is the datagen http server.
type Server struct {
	conf       config.Config
	httpServer *http.Server
	logger     *slog.Logger
}

// New returns a Server listening on conf.Addr().
func New(conf config.Config, opts ...Option) *Server {
	options := newOptions(opts...)
	logger := options.logger.With("component", "server", "service", conf.Name)

	opts = append(opts, WithLogger(logger))

	return &Server{
		conf: conf,
		httpServer: &http.Server{
			Addr:    conf.Addr(),
			Handler: NewRouter(opts...),
		},
		logger: logger,
	}
}

// Handler returns the http handler of the server.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then it shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errch := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errch <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errch:
		return err
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if s.conf.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.conf.ShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errch; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
