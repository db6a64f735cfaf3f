package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/pkg/lifecycle"
)

type local struct {
	root   string
	logger *zap.Logger
}

func newLocal(cfg *Config, logger *zap.Logger) (System, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root %s: %w", cfg.Root, err)
	}
	return &local{root: root, logger: logger}, nil
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting storage system", zap.String("root", l.root))

	lc.OnStartup(func() {
		info, err := os.Stat(l.root)
		if err != nil {
			l.logger.Warn("storage root unavailable", zap.String("root", l.root), zap.Error(err))
			return
		}
		if !info.IsDir() {
			l.logger.Warn("storage root is not a directory", zap.String("root", l.root))
			return
		}
		l.logger.Info("storage root ready", zap.String("root", l.root))
	})

	return nil
}

func (l *local) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	path := l.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("upload %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	l.logger.Debug("object written", zap.String("key", key), zap.String("content_type", contentType))
	return nil
}

func (l *local) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	return f, nil
}

func (l *local) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	info, err := os.Stat(l.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("check existence %s: %w", key, err)
	}
	return !info.IsDir(), nil
}

func (l *local) Locate(key string) string {
	return l.path(key)
}

func (l *local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}
