package infrastructure_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/artifacts/artifactstest"
	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/internal/infrastructure"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

func load(t *testing.T, root string) *config.Config {
	t.Helper()
	t.Setenv(config.EnvFraudguardEnv, "")
	t.Setenv("FRAUDGUARD_STORAGE_ROOT", root)

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), config.BaseConfigFile))
	require.NoError(t, err)
	return cfg
}

func TestStartLoadsArtifacts(t *testing.T) {
	root := t.TempDir()
	cfg := load(t, root)

	scfg := storage.Config{Backend: storage.BackendLocal, Root: root}
	require.NoError(t, scfg.Finalize(nil))
	sys, err := storage.New(&scfg, zap.NewNop())
	require.NoError(t, err)
	artifactstest.Publish(t, sys, &cfg.Artifacts)

	infra, err := infrastructure.Assemble(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, infra.Start())

	infra.Lifecycle.WaitForStartup()
	assert.True(t, infra.Lifecycle.Ready())
	assert.True(t, infra.Artifacts.Ready())
}

func TestStartWithoutArtifactsIsNotReady(t *testing.T) {
	cfg := load(t, t.TempDir())

	infra, err := infrastructure.Assemble(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, infra.Start())

	infra.Lifecycle.WaitForStartup()
	assert.True(t, infra.Lifecycle.Started())
	assert.False(t, infra.Lifecycle.Ready())
	assert.Equal(t, map[string]bool{"artifacts": false}, infra.Lifecycle.Status())
}
