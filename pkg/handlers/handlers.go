// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as an ErrorResponse. Server errors
// log at error level, client errors at warn.
func RespondError(w http.ResponseWriter, logger *zap.Logger, status int, err error) {
	logError(logger, status, err)
	RespondJSON(w, status, ErrorResponse{Error: err.Error()})
}

// RespondErrorWith logs err and writes body in place of the default
// ErrorResponse, for errors that carry structured detail.
func RespondErrorWith(w http.ResponseWriter, logger *zap.Logger, status int, err error, body any) {
	logError(logger, status, err)
	RespondJSON(w, status, body)
}

func logError(logger *zap.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
		return
	}
	logger.Warn("request rejected", zap.Int("status", status), zap.Error(err))
}
