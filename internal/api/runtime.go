package api

import (
	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Keys        artifacts.Config
	MaxBodySize int64
	Version     string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With(zap.String("module", "api")),
			Storage:   infra.Storage,
			Artifacts: infra.Artifacts,
		},
		Keys:        cfg.Artifacts,
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
		Version:     cfg.Version,
	}
}
