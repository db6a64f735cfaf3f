package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
	"github.com/JaimeStill/fraudguard/pkg/handlers"
	"github.com/JaimeStill/fraudguard/pkg/routes"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

// ArtifactStatus reports where one artifact lives and whether it is present.
type ArtifactStatus struct {
	Kind     artifacts.Kind `json:"kind"`
	Key      string         `json:"key"`
	Location string         `json:"location"`
	Exists   bool           `json:"exists"`
}

// ArtifactsReport is the body of GET /artifacts.
type ArtifactsReport struct {
	Loaded    bool             `json:"loaded"`
	Artifacts []ArtifactStatus `json:"artifacts"`
}

type artifactsHandler struct {
	store  storage.System
	source artifacts.System
	keys   artifacts.Config
	logger *zap.Logger
}

func newArtifactsHandler(
	store storage.System,
	source artifacts.System,
	keys artifacts.Config,
	logger *zap.Logger,
) *artifactsHandler {
	return &artifactsHandler{
		store:  store,
		source: source,
		keys:   keys,
		logger: logger.With(zap.String("handler", "artifacts")),
	}
}

func (h *artifactsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/artifacts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.report},
		},
	}
}

func (h *artifactsHandler) report(w http.ResponseWriter, r *http.Request) {
	report := ArtifactsReport{Loaded: h.source.Ready()}

	for _, kind := range []artifacts.Kind{artifacts.KindClassifier, artifacts.KindScaler, artifacts.KindFeatures} {
		key := h.keys.Key(kind)

		exists, err := h.store.Exists(r.Context(), key)
		if err != nil {
			handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
			return
		}

		report.Artifacts = append(report.Artifacts, ArtifactStatus{
			Kind:     kind,
			Key:      key,
			Location: h.store.Locate(key),
			Exists:   exists,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}
