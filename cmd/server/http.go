package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/pkg/lifecycle"
)

type httpServer struct {
	srv      *http.Server
	logger   *zap.Logger
	drain    time.Duration
	listener net.Listener
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *zap.Logger) *httpServer {
	return &httpServer{
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
			IdleTimeout:  cfg.IdleTimeoutDuration(),
			ErrorLog:     zap.NewStdLog(logger),
		},
		logger: logger.With(zap.String("system", "http")),
		drain:  cfg.ShutdownTimeoutDuration(),
	}
}

// Start binds the listen address before returning so a port conflict
// fails startup instead of surfacing later in the serve loop.
func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	s.listener = ln

	go s.serve()
	lc.OnShutdown(s.stop(lc.Context()))
	return nil
}

// Addr reports the bound address once Start has succeeded.
func (s *httpServer) Addr() string {
	if s.listener == nil {
		return s.srv.Addr
	}
	return s.listener.Addr().String()
}

func (s *httpServer) serve() {
	s.logger.Info("server listening", zap.String("addr", s.Addr()))
	err := s.srv.Serve(s.listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("server error", zap.Error(err))
	}
}

func (s *httpServer) stop(done context.Context) func() {
	return func() {
		<-done.Done()
		s.logger.Info("draining connections", zap.Duration("timeout", s.drain))

		ctx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()

		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Error("server shutdown error", zap.Error(err))
			return
		}
		s.logger.Info("server shutdown complete")
	}
}
