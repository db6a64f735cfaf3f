package prediction

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
)

type pipeline struct {
	source        Source
	amountFeature string
	logger        *zap.Logger
}

// New creates a prediction pipeline over source. amountFeature names the
// column the scaler was fitted on.
func New(source Source, amountFeature string, logger *zap.Logger) System {
	return &pipeline{
		source:        source,
		amountFeature: amountFeature,
		logger:        logger.With(zap.String("system", "prediction")),
	}
}

func (p *pipeline) Handler(maxBodySize int64) *Handler {
	return NewHandler(p, p.logger, maxBodySize)
}

func (p *pipeline) Predict(rec Record) (*Result, error) {
	a, vec, err := p.vectorize(rec)
	if err != nil {
		return nil, err
	}
	return infer(a, vec)
}

func (p *pipeline) Vectorize(rec Record) ([]float64, error) {
	_, vec, err := p.vectorize(rec)
	return vec, err
}

func (p *pipeline) Schema() (*SchemaInfo, error) {
	a, ok := p.source.Artifacts()
	if !ok {
		return nil, ErrNotReady
	}

	return &SchemaInfo{
		Features:      a.Schema.Names(),
		AmountFeature: p.amountFeature,
		AmountScaled:  p.scales(a),
	}, nil
}

func (p *pipeline) Health() Health {
	if p.source.Ready() {
		return Health{Status: StatusHealthy, ModelLoaded: true}
	}
	return Health{Status: StatusUnhealthy, ModelLoaded: false, Details: DetailsNotLoaded}
}

func (p *pipeline) vectorize(rec Record) (*artifacts.Artifacts, []float64, error) {
	a, ok := p.source.Artifacts()
	if !ok {
		return nil, nil, ErrNotReady
	}

	names := a.Schema.Names()

	var missing []string
	for _, name := range names {
		if _, ok := rec[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingFeaturesError{Missing: missing}
	}

	if len(rec) > len(names) {
		var extra []string
		for key := range rec {
			if _, ok := a.Schema.Index(key); !ok {
				extra = append(extra, key)
			}
		}
		slices.Sort(extra)
		p.logger.Warn("ignoring unknown features", zap.Strings("features", extra))
	}

	vec := make([]float64, len(names))
	for i, name := range names {
		vec[i] = rec[name]
	}

	if i, ok := a.Schema.Index(p.amountFeature); ok && a.Scaler.Fitted() {
		scaled, err := a.Scaler.Transform(vec[i])
		if err != nil {
			return nil, nil, &InferenceError{Err: fmt.Errorf("scale %s: %w", p.amountFeature, err)}
		}
		vec[i] = scaled
	}

	return a, vec, nil
}

func (p *pipeline) scales(a *artifacts.Artifacts) bool {
	_, ok := a.Schema.Index(p.amountFeature)
	return ok && a.Scaler.Fitted()
}

func infer(a *artifacts.Artifacts, vec []float64) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &InferenceError{Err: fmt.Errorf("classifier panic: %v", r)}
		}
	}()

	label, err := a.Classifier.Predict(vec)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	if label != 0 && label != 1 {
		return nil, &InferenceError{Err: fmt.Errorf("label %d is not binary", label)}
	}

	proba, err := a.Classifier.PredictProba(vec)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	if len(proba) < 2 {
		return nil, &InferenceError{Err: fmt.Errorf("distribution has %d classes, want 2", len(proba))}
	}

	prob := proba[1]
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return nil, &InferenceError{Err: fmt.Errorf("probability %v outside [0, 1]", prob)}
	}

	return &Result{Label: label, Probability: prob}, nil
}
