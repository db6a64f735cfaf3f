package model

import "fmt"

// Logistic is a binary logistic regression: p(fraud) = sigmoid(coef·x + intercept).
type Logistic struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// Predict returns 1 when the positive class is the more probable one.
func (m *Logistic) Predict(x []float64) (int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return argmax(proba), nil
}

// PredictProba returns [p(0), p(1)] for x.
func (m *Logistic) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(m.Coef) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(x), len(m.Coef))
	}

	z := m.Intercept
	for i, w := range m.Coef {
		z += w * x[i]
	}

	return binary(sigmoid(z)), nil
}

// Dimension returns the number of input features.
func (m *Logistic) Dimension() int {
	return len(m.Coef)
}

func (m *Logistic) validate() error {
	if len(m.Coef) == 0 {
		return ErrEmpty
	}
	if !finite(m.Coef...) || !finite(m.Intercept) {
		return fmt.Errorf("%w: non-finite coefficient", ErrInvalid)
	}
	return nil
}
