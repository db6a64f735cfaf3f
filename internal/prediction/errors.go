package prediction

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors for prediction operations.
var (
	ErrNotReady        = errors.New("model artifacts not loaded")
	ErrMissingFeatures = errors.New("missing required features")
	ErrInferenceFailed = errors.New("inference failed")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrBodyTooLarge    = errors.New("request body exceeds maximum size")
)

// MissingFeaturesError lists every required feature absent from a record,
// in schema order.
type MissingFeaturesError struct {
	Missing []string
}

func (e *MissingFeaturesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFeatures, strings.Join(e.Missing, ", "))
}

func (e *MissingFeaturesError) Is(target error) bool {
	return target == ErrMissingFeatures
}

// InferenceError wraps a classifier or scaler failure, or a malformed
// classifier output.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInferenceFailed, e.Err)
}

func (e *InferenceError) Unwrap() []error {
	return []error{ErrInferenceFailed, e.Err}
}

// MissingFeaturesResponse is the 400 body for an incomplete record.
type MissingFeaturesResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

// MapHTTPStatus maps prediction domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrMissingFeatures), errors.Is(err, ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
