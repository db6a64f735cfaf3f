// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, storage, trained artifacts) that domain systems require.
package infrastructure

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/pkg/lifecycle"
	"github.com/JaimeStill/fraudguard/pkg/logging"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, artifact storage, and the loaded model.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *zap.Logger
	Storage   storage.System
	Artifacts artifacts.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}

	return Assemble(cfg, logger)
}

// Assemble is New with a caller-provided logger.
func Assemble(cfg *config.Config, logger *zap.Logger) (*Infrastructure, error) {
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Storage:   store,
		Artifacts: artifacts.New(store, &cfg.Artifacts, logger),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The artifact load runs as a startup hook and gates readiness.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Artifacts.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("artifacts start failed: %w", err)
	}
	return nil
}
