package artifacts

import (
	"fmt"
	"os"
)

// Config names the storage keys of the three artifacts and the feature the
// scaler was fitted on.
type Config struct {
	Classifier    string `toml:"classifier"`
	Scaler        string `toml:"scaler"`
	Features      string `toml:"features"`
	AmountFeature string `toml:"amount_feature"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Classifier    string
	Scaler        string
	Features      string
	AmountFeature string
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
	if overlay.Classifier != "" {
		c.Classifier = overlay.Classifier
	}
	if overlay.Scaler != "" {
		c.Scaler = overlay.Scaler
	}
	if overlay.Features != "" {
		c.Features = overlay.Features
	}
	if overlay.AmountFeature != "" {
		c.AmountFeature = overlay.AmountFeature
	}
}

// Key returns the storage key configured for kind.
func (c *Config) Key(kind Kind) string {
	switch kind {
	case KindClassifier:
		return c.Classifier
	case KindScaler:
		return c.Scaler
	case KindFeatures:
		return c.Features
	}
	return ""
}

func (c *Config) loadDefaults() {
	if c.Classifier == "" {
		c.Classifier = "best_xgb_model.json"
	}
	if c.Scaler == "" {
		c.Scaler = "scaler.json"
	}
	if c.Features == "" {
		c.Features = "feature_names.csv"
	}
	if c.AmountFeature == "" {
		c.AmountFeature = "Amount"
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

	set(env.Classifier, &c.Classifier)
	set(env.Scaler, &c.Scaler)
	set(env.Features, &c.Features)
	set(env.AmountFeature, &c.AmountFeature)
}

func (c *Config) validate() error {
	keys := map[string]Kind{}
	for _, kind := range []Kind{KindClassifier, KindScaler, KindFeatures} {
		key := c.Key(kind)
		if other, dup := keys[key]; dup {
			return fmt.Errorf("%s and %s share key %q", other, kind, key)
		}
		keys[key] = kind
	}
	return nil
}
