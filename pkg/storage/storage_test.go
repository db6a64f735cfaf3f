package storage_test

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/pkg/storage"
)

func newLocal(t *testing.T) (storage.System, string) {
	t.Helper()
	root := t.TempDir()
	cfg := storage.Config{Backend: storage.BackendLocal, Root: root}
	require.NoError(t, cfg.Finalize(nil))

	sys, err := storage.New(&cfg, zap.NewNop())
	require.NoError(t, err)
	return sys, root
}

func TestLocalUploadDownload(t *testing.T) {
	sys, root := newLocal(t)
	ctx := context.Background()

	require.NoError(t, sys.Upload(ctx, "models/scaler.json", strings.NewReader(`{"type":"passthrough"}`), "application/json"))

	ok, err := sys.Exists(ctx, "models/scaler.json")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := sys.Download(ctx, "models/scaler.json")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"passthrough"}`, string(data))

	assert.Equal(t, filepath.Join(root, "models", "scaler.json"), sys.Locate("models/scaler.json"))
}

func TestLocalMissingObject(t *testing.T) {
	sys, _ := newLocal(t)
	ctx := context.Background()

	ok, err := sys.Exists(ctx, "absent.json")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = sys.Download(ctx, "absent.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalDirectoryIsNotAnObject(t *testing.T) {
	sys, _ := newLocal(t)
	ctx := context.Background()

	require.NoError(t, sys.Upload(ctx, "nested/file.csv", strings.NewReader("feature_name\n"), "text/csv"))

	ok, err := sys.Exists(ctx, "nested")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyValidation(t *testing.T) {
	sys, _ := newLocal(t)
	ctx := context.Background()

	_, err := sys.Download(ctx, "")
	assert.ErrorIs(t, err, storage.ErrEmptyKey)

	_, err = sys.Exists(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, storage.ErrInvalidKey)

	err = sys.Upload(ctx, "a/../../b", strings.NewReader(""), "text/plain")
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}

func TestMapHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, storage.MapHTTPStatus(storage.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, storage.MapHTTPStatus(storage.ErrEmptyKey))
	assert.Equal(t, http.StatusBadRequest, storage.MapHTTPStatus(storage.ErrInvalidKey))
	assert.Equal(t, http.StatusInternalServerError, storage.MapHTTPStatus(io.ErrUnexpectedEOF))
}
