package api

import (
	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/pkg/openapi"
)

var (
	zero = 0.0
	one  = 1.0
)

func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)
	spec.AddTag("Prediction", "Fraud classification over named features")
	spec.AddTag("Artifacts", "Model artifact inspection")
	spec.AddTag("Service", "Service metadata")

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Record": {
			Type:        "object",
			Description: "Named transaction features. Every feature in the model schema is required; unknown keys are ignored.",
			AdditionalProperties: &openapi.Schema{
				Type:   "number",
				Format: "double",
			},
			Example: map[string]float64{"Time": 0, "V1": -1.36, "V14": -0.31, cfg.Artifacts.AmountFeature: 149.62},
		},
		"Result": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"label":       {Type: "integer", Description: "1 for fraud, 0 for legitimate", Enum: []any{0, 1}},
				"probability": {Type: "number", Format: "double", Description: "Probability of fraud", Minimum: &zero, Maximum: &one},
			},
			Required: []string{"label", "probability"},
		},
		"MissingFeatures": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error":   {Type: "string"},
				"missing": {Type: "array", Items: &openapi.Schema{Type: "string"}, Description: "Absent features in schema order"},
			},
			Required: []string{"error", "missing"},
		},
		"SchemaInfo": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"features":       {Type: "array", Items: &openapi.Schema{Type: "string"}, Description: "Feature names in training order"},
				"amount_feature": {Type: "string"},
				"amount_scaled":  {Type: "boolean"},
			},
		},
		"Health": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status":       {Type: "string", Enum: []any{"healthy", "unhealthy"}},
				"model_loaded": {Type: "boolean"},
				"details":      {Type: "string", Description: "Present when the model is not loaded"},
			},
		},
		"Welcome": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message": {Type: "string"},
				"status":  {Type: "string"},
				"version": {Type: "string"},
			},
		},
		"ArtifactsReport": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"loaded": {Type: "boolean"},
				"artifacts": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"kind":     {Type: "string", Enum: []any{"classifier", "scaler", "features"}},
							"key":      {Type: "string"},
							"location": {Type: "string"},
							"exists":   {Type: "boolean"},
						},
					},
				},
			},
		},
	})

	spec.Components.AddResponses(map[string]*openapi.Response{
		"MissingFeatures": openapi.ResponseJSON("Required features absent from the record", "MissingFeatures"),
	})

	tags := []string{"Prediction"}

	spec.Paths["/"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:   "Service information",
			Tags:      []string{"Service"},
			Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Service banner", "Welcome")},
		},
	}

	spec.Paths["/predict"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Classify a transaction",
			Description: "Validates the record against the model schema, reorders it, scales the amount feature, and returns the verdict.",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("Record", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Verdict", "Result"),
				400: openapi.ResponseRef("MissingFeatures"),
				413: openapi.ResponseRef("PayloadTooLarge"),
				429: openapi.ResponseRef("TooManyRequests"),
				500: openapi.ResponseRef("InternalError"),
				503: openapi.ResponseRef("ServiceUnavailable"),
			},
		},
	}

	spec.Paths["/predict/schema"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Expected input features",
			Tags:    tags,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Feature schema", "SchemaInfo"),
				503: openapi.ResponseRef("ServiceUnavailable"),
			},
		},
	}

	spec.Paths["/health"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Model health",
			Tags:    tags,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Model loaded", "Health"),
				503: openapi.ResponseJSON("Model not loaded", "Health"),
			},
		},
	}

	spec.Paths["/artifacts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Artifact locations and presence",
			Tags:    []string{"Artifacts"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Artifact report", "ArtifactsReport"),
				500: openapi.ResponseRef("InternalError"),
			},
		},
	}

	return spec
}
