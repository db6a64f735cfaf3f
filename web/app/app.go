// Package app serves the browser form client: one numeric input per model
// feature, submitted in-process to the prediction pipeline and rendered as a
// verdict with the raw fraud probability.
package app

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/prediction"
	"github.com/JaimeStill/fraudguard/pkg/middleware"
	"github.com/JaimeStill/fraudguard/pkg/module"
	"github.com/JaimeStill/fraudguard/pkg/web"
)

//go:embed templates
var templateFS embed.FS

const layout = "app"

var (
	formView     = web.ViewDef{Route: "/{$}", Template: "form.html", Title: "Transaction"}
	notFoundView = web.ViewDef{Route: "/", Template: "notfound.html", Title: "Not Found"}
)

// Field is one form input.
type Field struct {
	Name  string
	Value string
}

// Verdict is the rendered classification.
type Verdict struct {
	Fraud       bool
	Probability float64
	Percent     float64
}

// Page is the data rendered by the form view.
type Page struct {
	Ready   bool
	Fields  []Field
	Result  *Verdict
	Error   string
	Missing []string
}

// FallbackFeatures is the field list shown when no schema is loaded.
func FallbackFeatures() []string {
	names := make([]string, 0, 30)
	names = append(names, "Time")
	for i := 1; i <= 28; i++ {
		names = append(names, fmt.Sprintf("V%d", i))
	}
	return append(names, "Amount")
}

type handler struct {
	sys       prediction.System
	templates *web.TemplateSet
	css       []byte
	logger    *zap.Logger
}

// NewModule creates the form client module at basePath over sys.
func NewModule(basePath string, sys prediction.System, logger *zap.Logger) (*module.Module, error) {
	logger = logger.With(zap.String("module", "app"))

	templates, err := web.NewTemplateSet(
		templateFS,
		"templates/layouts/*.html",
		"templates/views",
		basePath,
		[]web.ViewDef{formView, notFoundView},
	)
	if err != nil {
		return nil, fmt.Errorf("parse app templates: %w", err)
	}

	css, err := fs.ReadFile(templateFS, "templates/app.css")
	if err != nil {
		return nil, fmt.Errorf("read app stylesheet: %w", err)
	}

	h := &handler{sys: sys, templates: templates, css: css, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+formView.Route, h.form)
	mux.HandleFunc("POST "+formView.Route, h.submit)
	mux.HandleFunc("GET /app.css", web.ServeEmbeddedFile(h.css, "text/css; charset=utf-8"))
	mux.HandleFunc(notFoundView.Route, templates.ErrorHandler(layout, notFoundView, http.StatusNotFound))

	m := module.New(basePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(logger))
	m.Use(middleware.Recover(logger))

	return m, nil
}

func (h *handler) form(w http.ResponseWriter, r *http.Request) {
	page := h.page()
	for _, name := range h.features() {
		page.Fields = append(page.Fields, Field{Name: name, Value: "0.0"})
	}
	h.render(w, http.StatusOK, page)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		page := h.page()
		page.Error = "could not read the submitted form"
		h.render(w, http.StatusBadRequest, page)
		return
	}

	page := h.page()
	rec := make(prediction.Record)
	var invalid []string

	for _, name := range h.features() {
		raw := strings.TrimSpace(r.PostForm.Get(name))
		page.Fields = append(page.Fields, Field{Name: name, Value: raw})

		if !r.PostForm.Has(name) {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, name)
			continue
		}
		rec[name] = v
	}

	if len(invalid) > 0 {
		page.Error = "these fields must be numbers: " + strings.Join(invalid, ", ")
		h.render(w, http.StatusBadRequest, page)
		return
	}

	result, err := h.sys.Predict(rec)
	if err != nil {
		status := prediction.MapHTTPStatus(err)
		page.Ready = h.sys.Health().ModelLoaded
		page.Error = describe(err)
		if missing, ok := errors.AsType[*prediction.MissingFeaturesError](err); ok {
			page.Missing = missing.Missing
		}
		if status >= http.StatusInternalServerError {
			h.logger.Error("form prediction failed", zap.Error(err))
		}
		h.render(w, status, page)
		return
	}

	page.Result = &Verdict{
		Fraud:       result.Label == 1,
		Probability: result.Probability,
		Percent:     result.Probability * 100,
	}
	h.render(w, http.StatusOK, page)
}

func (h *handler) page() Page {
	return Page{Ready: h.sys.Health().ModelLoaded}
}

func (h *handler) features() []string {
	if info, err := h.sys.Schema(); err == nil {
		return info.Features
	}
	return FallbackFeatures()
}

func (h *handler) render(w http.ResponseWriter, status int, page Page) {
	if err := h.templates.Render(w, status, layout, formView, page); err != nil {
		h.logger.Error("render form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, prediction.ErrNotReady):
		return "The model is not loaded. Try again once the service reports healthy."
	case errors.Is(err, prediction.ErrMissingFeatures):
		return "Required features are missing:"
	default:
		return "The model could not classify this transaction."
	}
}
