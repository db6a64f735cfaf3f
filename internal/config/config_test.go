package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/fraudguard/internal/config"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(config.EnvFraudguardEnv, "")

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), config.BaseConfigFile))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Equal(t, "local", cfg.Env())

	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "best_xgb_model.json", cfg.Artifacts.Classifier)
	assert.Equal(t, "scaler.json", cfg.Artifacts.Scaler)
	assert.Equal(t, "feature_names.csv", cfg.Artifacts.Features)
	assert.Equal(t, "Amount", cfg.Artifacts.AmountFeature)

	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, int64(64*1024), cfg.API.MaxBodySizeBytes())
	assert.Equal(t, "Fraudguard API", cfg.API.OpenAPI.Title)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileAndOverlay(t *testing.T) {
	dir := t.TempDir()
	base := write(t, dir, "config.toml", `
version = "1.2.0"

[server]
port = 9000

[storage]
backend = "local"
root = "models"

[artifacts]
classifier = "model.json"

[api]
max_body_size = "1MB"

[api.rate]
enabled = true
requests_per_second = 5
burst = 10
`)
	write(t, dir, "config.staging.toml", `
[server]
port = 9100

[artifacts]
amount_feature = "amount_usd"
`)

	t.Setenv(config.EnvFraudguardEnv, "staging")

	cfg, err := config.LoadFile(base)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env())
	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "models", cfg.Storage.Root)
	assert.Equal(t, "model.json", cfg.Artifacts.Classifier)
	assert.Equal(t, "amount_usd", cfg.Artifacts.AmountFeature)
	assert.Equal(t, int64(1024*1024), cfg.API.MaxBodySizeBytes())
	assert.Equal(t, 5.0, cfg.API.Rate.RequestsPerSecond)
	assert.Equal(t, 10, cfg.API.Rate.Burst)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvFraudguardEnv, "")
	t.Setenv("FRAUDGUARD_SERVER_PORT", "7000")
	t.Setenv("FRAUDGUARD_STORAGE_ROOT", "/srv/artifacts")
	t.Setenv("FRAUDGUARD_ARTIFACTS_SCALER", "amount_scaler.json")
	t.Setenv("FRAUDGUARD_API_MAX_BODY_SIZE", "2KB")
	t.Setenv("FRAUDGUARD_LOG_LEVEL", "debug")
	t.Setenv("FRAUDGUARD_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), config.BaseConfigFile))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/srv/artifacts", cfg.Storage.Root)
	assert.Equal(t, "amount_scaler.json", cfg.Artifacts.Scaler)
	assert.Equal(t, int64(2048), cfg.API.MaxBodySizeBytes())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.API.CORS.Origins)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[server\nport = 1"},
		{"bad shutdown timeout", `shutdown_timeout = "soon"`},
		{"bad port", "[server]\nport = 70000"},
		{"bad body size", "[api]\nmax_body_size = \"lots\""},
		{"bad log level", "[logging]\nlevel = \"loud\""},
		{"unknown backend", "[storage]\nbackend = \"s3\""},
		{"shared artifact key", "[artifacts]\nclassifier = \"a.json\"\nscaler = \"a.json\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvFraudguardEnv, "")
			path := write(t, t.TempDir(), "config.toml", tt.content)

			_, err := config.LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestServerTimeouts(t *testing.T) {
	t.Setenv(config.EnvFraudguardEnv, "")
	t.Setenv(config.EnvServerIdleTimeout, "45s")
	path := write(t, t.TempDir(), "config.toml", "[server]\nread_timeout = \"5s\"\n")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeoutDuration())
	assert.Equal(t, 45*time.Second, cfg.Server.IdleTimeoutDuration())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeoutDuration())
}
