// Package storage provides read/write access to opaque objects addressed by
// key, backed by a local directory or an Azure Blob Storage container.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/pkg/lifecycle"
)

// System manages object storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that prepares the backend.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to the object at key with the given content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the object at key. The caller must close the reader.
	// Returns ErrNotFound if the object does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Locate resolves key to a human-readable location (absolute path or URL).
	Locate(key string) string
}

// New creates the storage system selected by cfg.Backend.
// No I/O happens until Start or the first operation.
func New(cfg *Config, logger *zap.Logger) (System, error) {
	logger = logger.With(zap.String("system", "storage"), zap.String("backend", cfg.Backend))

	switch cfg.Backend {
	case BackendLocal:
		return newLocal(cfg, logger)
	case BackendAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
