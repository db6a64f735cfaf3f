package model_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/fraudguard/pkg/model"
)

func TestLogisticPredictProba(t *testing.T) {
	m := &model.Logistic{Coef: []float64{1, -1}, Intercept: 0}

	proba, err := m.PredictProba([]float64{2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, proba[1], 1e-12)
	assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-12)

	proba, err = m.PredictProba([]float64{3, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-3)), proba[1], 1e-12)

	label, err := m.Predict([]float64{3, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestLogisticTieResolvesToLegitimate(t *testing.T) {
	m := &model.Logistic{Coef: []float64{0}, Intercept: 0}

	label, err := m.Predict([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestLogisticDimensionMismatch(t *testing.T) {
	m := &model.Logistic{Coef: []float64{1, 2, 3}}

	_, err := m.PredictProba([]float64{1, 2})
	assert.ErrorIs(t, err, model.ErrDimension)

	_, err = m.Predict([]float64{1, 2, 3, 4})
	assert.ErrorIs(t, err, model.ErrDimension)
}

func TestBoostedTreesTraversal(t *testing.T) {
	m := &model.BoostedTrees{
		NumFeatures: 2,
		BaseMargin:  -1,
		Trees: []model.Tree{
			{Nodes: []model.Node{
				{Feature: 0, Threshold: 10, Left: 1, Right: 2},
				{Feature: -1, Value: -2},
				{Feature: -1, Value: 3},
			}},
			{Nodes: []model.Node{
				{Feature: 1, Threshold: 0.5, Left: 1, Right: 2},
				{Feature: -1, Value: 0},
				{Feature: -1, Value: 1},
			}},
		},
	}

	tests := []struct {
		name   string
		x      []float64
		margin float64
		label  int
	}{
		{name: "both left", x: []float64{5, 0}, margin: -3, label: 0},
		{name: "split boundary goes right", x: []float64{10, 0}, margin: 2, label: 1},
		{name: "both right", x: []float64{11, 1}, margin: 3, label: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proba, err := m.PredictProba(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, 1/(1+math.Exp(-tt.margin)), proba[1], 1e-12)

			label, err := m.Predict(tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.label, label)
		})
	}

	_, err := m.PredictProba([]float64{1})
	assert.ErrorIs(t, err, model.ErrDimension)
}

func TestStandardTransform(t *testing.T) {
	s := &model.Standard{Mean: []float64{88.35}, Scale: []float64{250.12}}
	require.True(t, s.Fitted())

	got, err := s.Transform(149.62)
	require.NoError(t, err)
	assert.InDelta(t, (149.62-88.35)/250.12, got, 1e-12)
}

func TestStandardZeroScale(t *testing.T) {
	s := &model.Standard{Mean: []float64{5}, Scale: []float64{0}}

	got, err := s.Transform(7)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestUnfittedScalers(t *testing.T) {
	var s model.Standard
	assert.False(t, s.Fitted())
	_, err := s.Transform(1)
	assert.ErrorIs(t, err, model.ErrNotFitted)

	p := model.Passthrough{}
	assert.False(t, p.Fitted())
	got, err := p.Transform(149.62)
	require.NoError(t, err)
	assert.Equal(t, 149.62, got)
}

func TestDecodeClassifier(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "empty", payload: "", wantErr: model.ErrNull},
		{name: "null", payload: " null\n", wantErr: model.ErrNull},
		{name: "null params", payload: `{"type":"logistic_regression","params":null}`, wantErr: model.ErrNull},
		{name: "missing type", payload: `{"params":{}}`, wantErr: model.ErrInvalid},
		{name: "unknown type", payload: `{"type":"svm","params":{}}`, wantErr: model.ErrUnknownType},
		{name: "no coefficients", payload: `{"type":"logistic_regression","params":{"coef":[]}}`, wantErr: model.ErrEmpty},
		{name: "no trees", payload: `{"type":"gradient_boosted_trees","params":{"num_features":3,"trees":[]}}`, wantErr: model.ErrEmpty},
		{
			name:    "backward child",
			payload: `{"type":"gradient_boosted_trees","params":{"num_features":1,"trees":[{"nodes":[{"feature":0,"threshold":1,"left":0,"right":1},{"feature":-1}]}]}}`,
			wantErr: model.ErrInvalid,
		},
		{name: "malformed", payload: `{"type":`, wantErr: model.ErrInvalid},
		{name: "logistic", payload: `{"type":"logistic_regression","params":{"coef":[0.5,-0.25],"intercept":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := model.DecodeClassifier(strings.NewReader(tt.payload))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestDecodeScaler(t *testing.T) {
	s, err := model.DecodeScaler(strings.NewReader(`{"type":"standard_scaler","params":{"mean":[1],"scale":[2]}}`))
	require.NoError(t, err)
	assert.True(t, s.Fitted())

	s, err = model.DecodeScaler(strings.NewReader(`{"type":"standard_scaler"}`))
	require.NoError(t, err)
	assert.False(t, s.Fitted())

	s, err = model.DecodeScaler(strings.NewReader(`{"type":"passthrough"}`))
	require.NoError(t, err)
	assert.False(t, s.Fitted())

	_, err = model.DecodeScaler(strings.NewReader(`null`))
	assert.ErrorIs(t, err, model.ErrNull)

	_, err = model.DecodeScaler(strings.NewReader(`{"type":"standard_scaler","params":{"mean":[1,2],"scale":[2]}}`))
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestEncodeRoundTrip(t *testing.T) {
	original := &model.BoostedTrees{
		NumFeatures: 2,
		BaseMargin:  0.1,
		Trees: []model.Tree{{Nodes: []model.Node{
			{Feature: 1, Threshold: 0.3, Left: 1, Right: 2},
			{Feature: -1, Value: -0.7},
			{Feature: -1, Value: 0.9},
		}}},
	}

	var buf bytes.Buffer
	require.NoError(t, model.EncodeClassifier(&buf, original))

	decoded, err := model.DecodeClassifier(&buf)
	require.NoError(t, err)

	x := []float64{4, 0.5}
	want, err := original.PredictProba(x)
	require.NoError(t, err)
	got, err := decoded.PredictProba(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	buf.Reset()
	require.NoError(t, model.EncodeScaler(&buf, model.Passthrough{}))
	s, err := model.DecodeScaler(&buf)
	require.NoError(t, err)
	assert.Equal(t, model.Passthrough{}, s)
}
