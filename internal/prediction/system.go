package prediction

import (
	"github.com/JaimeStill/fraudguard/internal/artifacts"
)

// Source provides the loaded artifacts. artifacts.System satisfies it.
type Source interface {
	Artifacts() (*artifacts.Artifacts, bool)
	Ready() bool
}

// System defines the public contract for prediction operations. Safe for
// concurrent use.
type System interface {
	Handler(maxBodySize int64) *Handler

	// Predict validates, vectorizes, and classifies rec.
	Predict(rec Record) (*Result, error)
	// Vectorize validates rec and returns the exact vector the classifier
	// would receive.
	Vectorize(rec Record) ([]float64, error)
	// Schema describes the expected inputs. Returns ErrNotReady before load.
	Schema() (*SchemaInfo, error)
	// Health reports whether artifacts are loaded.
	Health() Health
}
