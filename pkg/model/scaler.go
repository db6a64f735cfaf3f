package model

import "fmt"

// Standard is a standard scaler fitted on a single feature:
// (v - mean) / scale. A nil Scale means the scaler was never fitted.
type Standard struct {
	Mean  []float64 `json:"mean,omitempty"`
	Scale []float64 `json:"scale,omitempty"`
}

// Fitted reports whether a scale was learned.
func (s *Standard) Fitted() bool {
	return len(s.Scale) > 0
}

// Transform standardizes v. A zero scale (constant training feature)
// is treated as 1.
func (s *Standard) Transform(v float64) (float64, error) {
	if !s.Fitted() {
		return v, ErrNotFitted
	}
	if len(s.Scale) != 1 {
		return v, fmt.Errorf("%w: scaler fitted on %d features, want 1", ErrDimension, len(s.Scale))
	}

	var mean float64
	if len(s.Mean) > 0 {
		mean = s.Mean[0]
	}

	scale := s.Scale[0]
	if scale == 0 {
		scale = 1
	}

	return (v - mean) / scale, nil
}

// Dimension returns the number of features the scale was learned on.
func (s *Standard) Dimension() int {
	return len(s.Scale)
}

func (s *Standard) validate() error {
	if len(s.Mean) > 0 && len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("%w: mean has %d values, scale has %d", ErrInvalid, len(s.Mean), len(s.Scale))
	}
	if !finite(s.Mean...) || !finite(s.Scale...) {
		return fmt.Errorf("%w: non-finite scaler parameter", ErrInvalid)
	}
	return nil
}

// Passthrough is an unfitted placeholder scaler.
type Passthrough struct{}

// Fitted always reports false.
func (Passthrough) Fitted() bool { return false }

// Transform returns v unchanged.
func (Passthrough) Transform(v float64) (float64, error) { return v, nil }
