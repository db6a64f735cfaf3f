package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   any
	}{
		{name: "200 with map", status: http.StatusOK, data: map[string]string{"key": "value"}},
		{name: "201 with struct", status: http.StatusCreated, data: struct{ ID int }{ID: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondJSON(rec, tt.status, tt.data)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var parsed map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
		})
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondError(rec, zap.NewNop(), http.StatusBadRequest, errors.New("invalid input"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var parsed handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	assert.Equal(t, "invalid input", parsed.Error)
}

func TestRespondErrorWith(t *testing.T) {
	rec := httptest.NewRecorder()
	body := map[string]any{"error": "missing", "missing": []string{"V14"}}
	handlers.RespondErrorWith(rec, zap.NewNop(), http.StatusBadRequest, errors.New("missing"), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"missing","missing":["V14"]}`, rec.Body.String())
}
