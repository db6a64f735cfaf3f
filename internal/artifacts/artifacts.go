// Package artifacts owns the trained artifacts behind a prediction: the
// classifier, the amount scaler, and the ordered feature schema. They are
// loaded once from storage, integrity-checked, and shared read-only.
package artifacts

import (
	"fmt"

	"github.com/JaimeStill/fraudguard/pkg/model"
)

// Kind names one of the three artifacts.
type Kind string

// Artifact kinds, in load order.
const (
	KindClassifier Kind = "classifier"
	KindScaler     Kind = "scaler"
	KindFeatures   Kind = "features"
)

// Artifacts is the loaded triple. The classifier was trained on vectors
// whose columns are exactly Schema, in order, with the amount feature
// pre-scaled by Scaler. Never mutated after load.
type Artifacts struct {
	Classifier model.Classifier
	Scaler     model.Scaler
	Schema     *Schema
}

// dimensioned is implemented by classifiers and scalers that know their
// input width.
type dimensioned interface {
	Dimension() int
}

func (a *Artifacts) validate() error {
	if a.Classifier == nil {
		return &LoadError{Kind: KindClassifier, Reason: ErrCorruptArtifact, Err: model.ErrNull}
	}
	if a.Scaler == nil {
		return &LoadError{Kind: KindScaler, Reason: ErrCorruptArtifact, Err: model.ErrNull}
	}
	if a.Schema == nil || a.Schema.Len() == 0 {
		return &LoadError{Kind: KindFeatures, Reason: ErrCorruptArtifact, Err: ErrEmptySchema}
	}
	if d, ok := a.Classifier.(dimensioned); ok && d.Dimension() != a.Schema.Len() {
		return &LoadError{
			Kind:   KindClassifier,
			Reason: ErrCorruptArtifact,
			Err:    fmt.Errorf("%w: classifier expects %d features, schema has %d", model.ErrDimension, d.Dimension(), a.Schema.Len()),
		}
	}
	if d, ok := a.Scaler.(dimensioned); ok && a.Scaler.Fitted() && d.Dimension() != 1 {
		return &LoadError{
			Kind:   KindScaler,
			Reason: ErrCorruptArtifact,
			Err:    fmt.Errorf("%w: scaler fitted on %d features, want 1", model.ErrDimension, d.Dimension()),
		}
	}
	return nil
}
