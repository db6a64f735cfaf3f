// Package artifactstest publishes a small, deterministic artifact triple for
// tests that need a loaded store.
package artifactstest

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
	"github.com/JaimeStill/fraudguard/pkg/model"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

// Mean and Scale of the fixture's fitted amount scaler.
const (
	AmountMean  = 88.35
	AmountScale = 250.12
)

// Names returns the fixture schema: Time, V1..V28, Amount.
func Names() []string {
	names := make([]string, 0, 30)
	names = append(names, "Time")
	for i := 1; i <= 28; i++ {
		names = append(names, fmt.Sprintf("V%d", i))
	}
	return append(names, "Amount")
}

// Classifier returns a logistic model that flags strongly negative V14 and
// large scaled amounts.
func Classifier() *model.Logistic {
	coef := make([]float64, 30)
	coef[14] = -1.0
	coef[29] = 0.5
	return &model.Logistic{Coef: coef, Intercept: -2}
}

// Scaler returns the fixture's fitted amount scaler.
func Scaler() *model.Standard {
	return &model.Standard{Mean: []float64{AmountMean}, Scale: []float64{AmountScale}}
}

// Record returns a complete input with every feature zero except Amount.
func Record(amount float64) map[string]float64 {
	rec := make(map[string]float64, 30)
	for _, name := range Names() {
		rec[name] = 0
	}
	rec["Amount"] = amount
	return rec
}

// Config returns a finalized artifact config with default keys.
func Config(t testing.TB) *artifacts.Config {
	t.Helper()
	var cfg artifacts.Config
	require.NoError(t, cfg.Finalize(nil))
	return &cfg
}

// Storage returns local storage rooted in a fresh temp directory.
func Storage(t testing.TB) storage.System {
	t.Helper()
	cfg := storage.Config{Backend: storage.BackendLocal, Root: t.TempDir()}
	require.NoError(t, cfg.Finalize(nil))

	sys, err := storage.New(&cfg, zap.NewNop())
	require.NoError(t, err)
	return sys
}

// Publish writes the fixture triple to sys under the keys in cfg.
func Publish(t testing.TB, sys storage.System, cfg *artifacts.Config) {
	t.Helper()
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, model.EncodeClassifier(&buf, Classifier()))
	require.NoError(t, sys.Upload(ctx, cfg.Classifier, &buf, "application/json"))

	buf.Reset()
	require.NoError(t, model.EncodeScaler(&buf, Scaler()))
	require.NoError(t, sys.Upload(ctx, cfg.Scaler, &buf, "application/json"))

	schema, err := artifacts.NewSchema(Names())
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, artifacts.WriteSchema(&buf, schema))
	require.NoError(t, sys.Upload(ctx, cfg.Features, &buf, "text/csv"))
}

// Loaded returns a store that has loaded the fixture triple.
func Loaded(t testing.TB) artifacts.System {
	t.Helper()
	sys := Storage(t)
	cfg := Config(t)
	Publish(t, sys, cfg)

	store := artifacts.New(sys, cfg, zap.NewNop())
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	return store
}

// Empty returns a store over storage holding no artifacts. It is never ready.
func Empty(t testing.TB) artifacts.System {
	t.Helper()
	store := artifacts.New(Storage(t), Config(t), zap.NewNop())
	_, err := store.Load(context.Background())
	require.Error(t, err)
	return store
}
