// Package config loads the service configuration from config.toml, an
// optional environment overlay, and FRAUDGUARD_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
	"github.com/JaimeStill/fraudguard/pkg/logging"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvFraudguardEnv             = "FRAUDGUARD_ENV"
	EnvFraudguardShutdownTimeout = "FRAUDGUARD_SHUTDOWN_TIMEOUT"
	EnvFraudguardVersion         = "FRAUDGUARD_VERSION"
)

var storageEnv = &storage.Env{
	Backend:          "FRAUDGUARD_STORAGE_BACKEND",
	Root:             "FRAUDGUARD_STORAGE_ROOT",
	ContainerName:    "FRAUDGUARD_STORAGE_CONTAINER_NAME",
	ConnectionString: "FRAUDGUARD_STORAGE_CONNECTION_STRING",
	ServiceURL:       "FRAUDGUARD_STORAGE_SERVICE_URL",
	MaxRetries:       "FRAUDGUARD_STORAGE_MAX_RETRIES",
}

var artifactsEnv = &artifacts.Env{
	Classifier:    "FRAUDGUARD_ARTIFACTS_CLASSIFIER",
	Scaler:        "FRAUDGUARD_ARTIFACTS_SCALER",
	Features:      "FRAUDGUARD_ARTIFACTS_FEATURES",
	AmountFeature: "FRAUDGUARD_ARTIFACTS_AMOUNT_FEATURE",
}

var loggingEnv = &logging.Env{
	Level:  "FRAUDGUARD_LOG_LEVEL",
	Format: "FRAUDGUARD_LOG_FORMAT",
	File:   "FRAUDGUARD_LOG_FILE",
}

// Config is the root configuration for the Fraudguard service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Storage         storage.Config   `toml:"storage"`
	Artifacts       artifacts.Config `toml:"artifacts"`
	API             APIConfig        `toml:"api"`
	Logging         logging.Config   `toml:"logging"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the FRAUDGUARD_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvFraudguardEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFile(BaseConfigFile)
}

// LoadFile is Load with an explicit base config path. The overlay is looked
// up next to it.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(path); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Storage.Merge(&overlay.Storage)
	c.Artifacts.Merge(&overlay.Artifacts)
	c.API.Merge(&overlay.API)
	c.Logging.Merge(&overlay.Logging)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Artifacts.Finalize(artifactsEnv); err != nil {
		return fmt.Errorf("artifacts: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvFraudguardShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvFraudguardVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvFraudguardEnv)
	if env == "" {
		return ""
	}

	path := fmt.Sprintf(OverlayConfigPattern, env)
	if dir := filepath.Dir(base); dir != "." {
		path = filepath.Join(dir, path)
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
