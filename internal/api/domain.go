package api

import (
	"github.com/JaimeStill/fraudguard/internal/prediction"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prediction prediction.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Prediction: prediction.New(
			runtime.Artifacts,
			runtime.Keys.AmountFeature,
			runtime.Logger,
		),
	}
}
