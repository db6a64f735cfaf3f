package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost            = "FRAUDGUARD_SERVER_HOST"
	EnvServerPort            = "FRAUDGUARD_SERVER_PORT"
	EnvServerReadTimeout     = "FRAUDGUARD_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "FRAUDGUARD_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout     = "FRAUDGUARD_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout = "FRAUDGUARD_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP server parameters. Timeouts are Go duration strings.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	IdleTimeout     string `toml:"idle_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`

	read, write, idle, shutdown time.Duration
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ReadTimeoutDuration returns the parsed ReadTimeout.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration { return c.read }

// WriteTimeoutDuration returns the parsed WriteTimeout.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration { return c.write }

// IdleTimeoutDuration returns the parsed IdleTimeout.
func (c *ServerConfig) IdleTimeoutDuration() time.Duration { return c.idle }

// ShutdownTimeoutDuration returns the parsed ShutdownTimeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration { return c.shutdown }

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for dst, src := range c.durations(overlay) {
		if *src != "" {
			*dst = *src
		}
	}
}

// durations pairs each timeout field of c with the same field of other.
func (c *ServerConfig) durations(other *ServerConfig) map[*string]*string {
	return map[*string]*string{
		&c.ReadTimeout:     &other.ReadTimeout,
		&c.WriteTimeout:    &other.WriteTimeout,
		&c.IdleTimeout:     &other.IdleTimeout,
		&c.ShutdownTimeout: &other.ShutdownTimeout,
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}

	defaults := map[*string]string{
		&c.ReadTimeout:     "15s",
		&c.WriteTimeout:    "30s",
		&c.IdleTimeout:     "2m",
		&c.ShutdownTimeout: "30s",
	}
	for dst, v := range defaults {
		if *dst == "" {
			*dst = v
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}

	env := map[string]*string{
		EnvServerReadTimeout:     &c.ReadTimeout,
		EnvServerWriteTimeout:    &c.WriteTimeout,
		EnvServerIdleTimeout:     &c.IdleTimeout,
		EnvServerShutdownTimeout: &c.ShutdownTimeout,
	}
	for name, dst := range env {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"read_timeout", c.ReadTimeout, &c.read},
		{"write_timeout", c.WriteTimeout, &c.write},
		{"idle_timeout", c.IdleTimeout, &c.idle},
		{"shutdown_timeout", c.ShutdownTimeout, &c.shutdown},
	}
	for _, f := range fields {
		d, err := time.ParseDuration(f.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = d
	}
	return nil
}
