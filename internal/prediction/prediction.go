// Package prediction turns a named-feature record into a fraud verdict using
// the loaded artifacts: it validates the field set, projects the record onto
// the training column order, scales the amount feature, and runs inference.
package prediction

// Record is one transaction as named numeric features. Key order is
// irrelevant and unknown keys are tolerated.
type Record map[string]float64

// Result is the verdict for one record.
type Result struct {
	// Label is 0 for legitimate and 1 for fraud.
	Label int `json:"label"`
	// Probability is the model's probability of fraud, in [0, 1].
	Probability float64 `json:"probability"`
}

// SchemaInfo describes the inputs the loaded model expects.
type SchemaInfo struct {
	Features      []string `json:"features"`
	AmountFeature string   `json:"amount_feature"`
	AmountScaled  bool     `json:"amount_scaled"`
}

// Health status values.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// DetailsNotLoaded accompanies an unhealthy Health.
const DetailsNotLoaded = "Model not loaded or failed to load"

// Health reports whether predictions can be served.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Details     string `json:"details,omitempty"`
}
