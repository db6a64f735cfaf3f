package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/internal/infrastructure"
	"github.com/JaimeStill/fraudguard/pkg/formatting"
)

// Server owns the process-wide infrastructure, the mounted modules, and the
// HTTP listener serving them.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, modules)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		zap.Strings("modules", router.Prefixes()),
		zap.String("artifact_root", infra.Storage.Locate("")),
		zap.String("max_body_size", formatting.FormatBytes(cfg.API.MaxBodySizeBytes(), 0)),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start brings up storage and artifact loading, then the listener. Artifact
// loading runs in the background; readiness is reported once it settles.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go s.reportReadiness()
	return nil
}

func (s *Server) reportReadiness() {
	lc := s.infra.Lifecycle
	lc.WaitForStartup()

	if lc.Ready() {
		s.infra.Logger.Info("model loaded, serving predictions", zap.String("addr", s.http.Addr()))
		return
	}
	s.infra.Logger.Warn(
		"serving without a model; prediction requests will return 503",
		zap.Any("subsystems", lc.Status()),
	)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown", zap.Duration("timeout", timeout))
	return s.infra.Lifecycle.Shutdown(timeout)
}
