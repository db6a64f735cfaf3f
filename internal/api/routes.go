package api

import (
	"net/http"

	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/internal/prediction"
	"github.com/JaimeStill/fraudguard/pkg/handlers"
	"github.com/JaimeStill/fraudguard/pkg/openapi"
	"github.com/JaimeStill/fraudguard/pkg/routes"
)

// Welcome is the body served at the API root.
type Welcome struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	spec, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return err
	}

	routes.Register(
		mux,
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{$}", Handler: welcome(domain.Prediction, runtime.Version)},
				{Method: "GET", Pattern: cfg.API.OpenAPI.Path, Handler: openapi.ServeSpec(spec)},
			},
		},
		domain.Prediction.Handler(runtime.MaxBodySize).Routes(),
		newArtifactsHandler(runtime.Storage, runtime.Artifacts, runtime.Keys, runtime.Logger).routes(),
	)
	return nil
}

func welcome(sys prediction.System, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, Welcome{
			Message: "Credit card fraud detection API",
			Status:  sys.Health().Status,
			Version: version,
		})
	}
}
