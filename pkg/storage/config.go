package storage

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backends.
const (
	BackendLocal = "local"
	BackendAzure = "azure"
)

// Config selects a storage backend and holds its connection parameters.
// The local backend resolves keys under Root; the azure backend uses either
// a connection string or a service URL authenticated with the default
// Azure credential chain.
type Config struct {
	Backend          string `toml:"backend"`
	Root             string `toml:"root"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	ServiceURL       string `toml:"service_url"`
	MaxRetries       int32  `toml:"max_retries"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Backend          string
	Root             string
	ContainerName    string
	ConnectionString string
	ServiceURL       string
	MaxRetries       string
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
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.Root != "" {
		c.Root = overlay.Root
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.ServiceURL != "" {
		c.ServiceURL = overlay.ServiceURL
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendLocal
	}
	if c.Root == "" {
		c.Root = "artifacts"
	}
	if c.ContainerName == "" {
		c.ContainerName = "models"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(env.Backend, &c.Backend)
	set(env.Root, &c.Root)
	set(env.ContainerName, &c.ContainerName)
	set(env.ConnectionString, &c.ConnectionString)
	set(env.ServiceURL, &c.ServiceURL)

	if env.MaxRetries != "" {
		if v := os.Getenv(env.MaxRetries); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				c.MaxRetries = int32(n)
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.Root == "" {
			return fmt.Errorf("root required")
		}
	case BackendAzure:
		if c.ContainerName == "" {
			return fmt.Errorf("container_name required")
		}
		if c.ConnectionString == "" && c.ServiceURL == "" {
			return fmt.Errorf("connection_string or service_url required")
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}
