package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
	"github.com/JaimeStill/fraudguard/internal/artifacts/artifactstest"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func env(t *testing.T, root string) string {
	t.Helper()
	t.Setenv("FRAUDGUARD_ENV", "")
	t.Setenv("FRAUDGUARD_STORAGE_ROOT", root)
	t.Setenv("FRAUDGUARD_LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "fraudctl", rootCmd.Use)

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"check", "publish", "predict", "health"} {
		assert.True(t, names[name], "expected subcommand %q", name)
	}

	flag := publishCmd.Flags().Lookup("dir")
	require.NotNil(t, flag)
	assert.Equal(t, ".", flag.DefValue)
}

func TestPublishThenCheck(t *testing.T) {
	src := artifactstest.Storage(t)
	srcDir := filepath.Dir(src.Locate("x"))
	artifactstest.Publish(t, src, artifactstest.Config(t))

	dest := t.TempDir()
	cfgPath := env(t, dest)

	out, err := run(t, "", "publish", "--config", cfgPath, "--dir", srcDir)
	require.NoError(t, err)
	assert.Contains(t, out, "classifier")
	assert.FileExists(t, filepath.Join(dest, "best_xgb_model.json"))
	assert.FileExists(t, filepath.Join(dest, "scaler.json"))
	assert.FileExists(t, filepath.Join(dest, "feature_names.csv"))

	out, err = run(t, "", "check", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "features    30")
	assert.Contains(t, out, "fitted=true")
	assert.Contains(t, out, "scaled=true")
}

func TestPublishRejectsCorruptArtifact(t *testing.T) {
	src := artifactstest.Storage(t)
	srcDir := filepath.Dir(src.Locate("x"))
	artifactstest.Publish(t, src, artifactstest.Config(t))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "scaler.json"), []byte("null"), 0o644))

	dest := t.TempDir()
	cfgPath := env(t, dest)

	_, err := run(t, "", "publish", "--config", cfgPath, "--dir", srcDir)
	require.ErrorIs(t, err, artifacts.ErrCorruptArtifact)
	assert.NoFileExists(t, filepath.Join(dest, "best_xgb_model.json"))
}

func TestCheckReportsMissing(t *testing.T) {
	root := t.TempDir()
	cfgPath := env(t, root)

	_, err := run(t, "", "check", "--config", cfgPath)
	require.ErrorIs(t, err, artifacts.ErrMissingArtifact)

	sys, serr := storage.New(&storage.Config{Backend: storage.BackendLocal, Root: root}, zap.NewNop())
	require.NoError(t, serr)
	assert.Contains(t, err.Error(), sys.Locate("best_xgb_model.json"))
}

func TestPredict(t *testing.T) {
	var got map[string]float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/predict", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"label":1,"probability":0.93}`))
	}))
	defer srv.Close()

	out, err := run(t, `{"Time":0,"Amount":149.62}`, "predict", "--url", srv.URL, "--file", "-")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Time": 0, "Amount": 149.62}, got)
	assert.Contains(t, out, `"probability": 0.93`)
}

func TestPredictFromFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"missing required features: V14","missing":["V14"]}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Time":0}`), 0o644))

	out, err := run(t, "", "predict", "--url", srv.URL, "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, out, "V14")
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		fail   bool
	}{
		{"healthy", http.StatusOK, `{"status":"healthy","model_loaded":true}`, false},
		{"unhealthy", http.StatusServiceUnavailable, `{"status":"unhealthy","model_loaded":false}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/health", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			out, err := run(t, "", "health", "--url", srv.URL+"/")
			assert.Equal(t, tt.fail, err != nil)
			assert.Contains(t, out, tt.name)
		})
	}
}
