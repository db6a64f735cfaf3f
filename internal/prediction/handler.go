package prediction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/pkg/handlers"
	"github.com/JaimeStill/fraudguard/pkg/middleware"
	"github.com/JaimeStill/fraudguard/pkg/routes"
)

// Handler provides HTTP endpoints for prediction operations.
type Handler struct {
	sys         System
	logger      *zap.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, and request body limit.
func NewHandler(sys System, logger *zap.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With(zap.String("handler", "prediction")),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for prediction endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/predict", Handler: h.Predict},
			{Method: "GET", Pattern: "/predict/schema", Handler: h.Schema},
			{Method: "GET", Pattern: "/health", Handler: h.Health},
		},
	}
}

// Predict decodes a JSON object of named numbers and returns the verdict.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("request_id", middleware.RequestIDFrom(r.Context())))

	rec, err := h.decode(w, r)
	if err != nil {
		handlers.RespondError(w, logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Predict(rec)
	if err != nil {
		h.respondPredictError(w, logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Schema returns the ordered feature names the model expects.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	info, err := h.sys.Schema()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, info)
}

// Health reports whether the model is loaded; 503 when it is not.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.sys.Health()

	status := http.StatusOK
	if !health.ModelLoaded {
		status = http.StatusServiceUnavailable
	}

	handlers.RespondJSON(w, status, health)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Record, error) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)

	dec := json.NewDecoder(body)

	var raw map[string]*float64
	if err := dec.Decode(&raw); err != nil {
		return nil, decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%w: trailing data after JSON object", ErrInvalidRecord)
		}
		return nil, decodeError(err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidRecord)
	}

	rec := make(Record, len(raw))
	for name, v := range raw {
		if v == nil {
			return nil, fmt.Errorf("%w: feature %q is null", ErrInvalidRecord, name)
		}
		rec[name] = *v
	}
	return rec, nil
}

func decodeError(err error) error {
	if _, ok := errors.AsType[*http.MaxBytesError](err); ok {
		return ErrBodyTooLarge
	}
	return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
}

func (h *Handler) respondPredictError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := MapHTTPStatus(err)

	if missing, ok := errors.AsType[*MissingFeaturesError](err); ok {
		handlers.RespondErrorWith(w, logger, status, err, MissingFeaturesResponse{
			Error:   err.Error(),
			Missing: missing.Missing,
		})
		return
	}

	if status == http.StatusInternalServerError {
		logger.Error("prediction failed", zap.Error(err))
		handlers.RespondJSON(w, status, handlers.ErrorResponse{Error: ErrInferenceFailed.Error()})
		return
	}

	handlers.RespondError(w, logger, status, err)
}
