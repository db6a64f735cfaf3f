// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/internal/infrastructure"
	"github.com/JaimeStill/fraudguard/pkg/middleware"
	"github.com/JaimeStill/fraudguard/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, fmt.Errorf("register api routes: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.RateLimit(&cfg.API.Rate))

	return m, nil
}
