package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/fraudguard/pkg/formatting"
	"github.com/JaimeStill/fraudguard/pkg/middleware"
	"github.com/JaimeStill/fraudguard/pkg/openapi"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "FRAUDGUARD_CORS_ENABLED",
	Origins:          "FRAUDGUARD_CORS_ORIGINS",
	AllowedMethods:   "FRAUDGUARD_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "FRAUDGUARD_CORS_ALLOWED_HEADERS",
	AllowCredentials: "FRAUDGUARD_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "FRAUDGUARD_CORS_MAX_AGE",
}

var rateEnv = &middleware.RateEnv{
	Enabled:           "FRAUDGUARD_RATE_ENABLED",
	RequestsPerSecond: "FRAUDGUARD_RATE_REQUESTS_PER_SECOND",
	Burst:             "FRAUDGUARD_RATE_BURST",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "FRAUDGUARD_OPENAPI_TITLE",
	Description: "FRAUDGUARD_OPENAPI_DESCRIPTION",
	Path:        "FRAUDGUARD_OPENAPI_PATH",
}

// APIConfig holds API routing, request limits, CORS, and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Rate        middleware.RateConfig `toml:"rate"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes. Validated by Finalize.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxBodySize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Rate.Finalize(rateEnv); err != nil {
		return fmt.Errorf("rate: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Rate.Merge(&overlay.Rate)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "64KB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("FRAUDGUARD_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("FRAUDGUARD_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}

func (c *APIConfig) validate() error {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive: %s", c.MaxBodySize)
	}
	return nil
}
