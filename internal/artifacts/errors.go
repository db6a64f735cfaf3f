package artifacts

import (
	"errors"
	"fmt"
)

// Load failure reasons.
var (
	ErrMissingArtifact = errors.New("artifact not found")
	ErrCorruptArtifact = errors.New("artifact corrupt")
	ErrEmptySchema     = errors.New("feature schema is empty")
)

// LoadError reports which artifact failed to load and why. Reason is
// ErrMissingArtifact or ErrCorruptArtifact, or nil when the storage backend
// itself failed; Err carries the underlying cause.
type LoadError struct {
	Kind     Kind
	Location string
	Reason   error
	Err      error
}

func (e *LoadError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrMissingArtifact):
		return fmt.Sprintf("%s artifact not found at %s", e.Kind, e.Location)
	case errors.Is(e.Reason, ErrCorruptArtifact):
		if e.Err != nil {
			return fmt.Sprintf("%s artifact corrupt: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("%s artifact corrupt", e.Kind)
	default:
		return fmt.Sprintf("%s artifact unavailable at %s: %v", e.Kind, e.Location, e.Err)
	}
}

func (e *LoadError) Unwrap() []error {
	var errs []error
	if e.Reason != nil {
		errs = append(errs, e.Reason)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
