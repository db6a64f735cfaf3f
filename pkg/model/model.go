// Package model defines the inference capabilities consumed by the prediction
// pipeline and the portable JSON artifact formats that back them.
//
// Classifiers and scalers are narrow interfaces so the artifact format can
// change without touching the code that consumes them.
package model

import (
	"errors"
	"math"
)

// Classifier is a trained binary predictor over a positional feature vector.
type Classifier interface {
	// Predict returns the discrete class label for x.
	Predict(x []float64) (int, error)
	// PredictProba returns the class probability distribution for x,
	// indexed by class label.
	PredictProba(x []float64) ([]float64, error)
}

// Scaler is a numeric transform fitted on the training distribution of a
// single feature.
type Scaler interface {
	// Transform maps a raw value into the scaled space seen during training.
	Transform(v float64) (float64, error)
	// Fitted reports whether the scaler carries a fitted scale. An unfitted
	// scaler is a placeholder and must not be applied.
	Fitted() bool
}

// Sentinel errors for model construction and inference.
var (
	ErrDimension   = errors.New("feature vector dimension mismatch")
	ErrEmpty       = errors.New("model has no parameters")
	ErrInvalid     = errors.New("invalid model parameters")
	ErrNotFitted   = errors.New("scaler is not fitted")
	ErrNull        = errors.New("artifact is null")
	ErrUnknownType = errors.New("unknown artifact type")
)

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func binary(p float64) []float64 {
	return []float64{1 - p, p}
}

// argmax over a two-class distribution; ties resolve to class 0.
func argmax(proba []float64) int {
	if proba[1] > proba[0] {
		return 1
	}
	return 0
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
