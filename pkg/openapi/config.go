package openapi

import (
	"fmt"
	"os"
	"strings"
)

// Config holds OpenAPI document metadata and the path it is served at,
// relative to the API base path.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Path        string `toml:"path"`
}

// ConfigEnv maps config fields to environment variable names for override injection.
type ConfigEnv struct {
	Title       string
	Description string
	Path        string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path must start with /: %q", c.Path)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	for dst, src := range c.fields(overlay) {
		if *src != "" {
			*dst = *src
		}
	}
}

func (c *Config) fields(other *Config) map[*string]*string {
	return map[*string]*string{
		&c.Title:       &other.Title,
		&c.Description: &other.Description,
		&c.Path:        &other.Path,
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Fraudguard API"
	}
	if c.Description == "" {
		c.Description = "Credit card fraud classification over named transaction features."
	}
	if c.Path == "" {
		c.Path = "/openapi.json"
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	names := map[string]*string{
		env.Title:       &c.Title,
		env.Description: &c.Description,
		env.Path:        &c.Path,
	}
	for name, dst := range names {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
}
