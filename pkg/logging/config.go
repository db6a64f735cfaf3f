package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
)

// Log encoders.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config controls log level, encoding, and an optional rotated file sink.
type Config struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Level  string
	Format string
	File   string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.File != "" {
		c.File = overlay.File
	}
	if overlay.MaxSizeMB != 0 {
		c.MaxSizeMB = overlay.MaxSizeMB
	}
	if overlay.MaxBackups != 0 {
		c.MaxBackups = overlay.MaxBackups
	}
	if overlay.MaxAgeDays != 0 {
		c.MaxAgeDays = overlay.MaxAgeDays
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 100
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 5
	}
	if c.MaxAgeDays == 0 {
		c.MaxAgeDays = 28
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Level != "" {
		if v := os.Getenv(env.Level); v != "" {
			c.Level = v
		}
	}
	if env.Format != "" {
		if v := os.Getenv(env.Format); v != "" {
			c.Format = v
		}
	}
	if env.File != "" {
		if v := os.Getenv(env.File); v != "" {
			c.File = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}
	if c.Format != FormatJSON && c.Format != FormatConsole {
		return fmt.Errorf("invalid format: %q", c.Format)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("rotation limits must not be negative")
	}
	return nil
}
