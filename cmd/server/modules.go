package main

import (
	"net/http"

	"github.com/JaimeStill/fraudguard/internal/api"
	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/internal/infrastructure"
	"github.com/JaimeStill/fraudguard/internal/prediction"
	"github.com/JaimeStill/fraudguard/pkg/handlers"
	"github.com/JaimeStill/fraudguard/pkg/module"
	"github.com/JaimeStill/fraudguard/web/app"
)

const appPrefix = "/app"

type Modules struct {
	API *module.Module
	App *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	appModule, err := app.NewModule(
		appPrefix,
		prediction.New(infra.Artifacts, cfg.Artifacts.AmountFeature, infra.Logger),
		infra.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
		App: appModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
}

type readiness struct {
	Status     string          `json:"status"`
	Subsystems map[string]bool `json:"subsystems"`
}

func buildRouter(infra *infrastructure.Infrastructure, modules *Modules) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, modules.App.Prefix()+"/", http.StatusFound)
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		body := readiness{Status: "ready", Subsystems: infra.Lifecycle.Status()}
		if !infra.Lifecycle.Ready() {
			body.Status = "not ready"
			handlers.RespondJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, body)
	})

	return router
}
