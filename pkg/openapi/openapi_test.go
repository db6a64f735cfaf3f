package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/fraudguard/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{Title: "Fraudguard API", Description: "fraud scoring"}, "1.0.0")
	spec.AddServer("/api")
	spec.AddTag("Prediction", "")

	assert.Equal(t, "3.1.0", spec.OpenAPI)
	assert.Equal(t, "Fraudguard API", spec.Info.Title)
	assert.Equal(t, "fraud scoring", spec.Info.Description)
	require.Len(t, spec.Servers, 1)
	assert.Equal(t, "/api", spec.Servers[0].URL)
	require.Len(t, spec.Tags, 1)
	assert.Equal(t, "Prediction", spec.Tags[0].Name)
	assert.Contains(t, spec.Components.Responses, "ServiceUnavailable")
	assert.Contains(t, spec.Components.Schemas, "Error")
}

func TestRefs(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Result", openapi.SchemaRef("Result").Ref)
	assert.Equal(t, "#/components/responses/BadRequest", openapi.ResponseRef("BadRequest").Ref)

	rb := openapi.RequestBodyJSON("Record", true)
	assert.True(t, rb.Required)
	assert.Equal(t, "#/components/schemas/Record", rb.Content["application/json"].Schema.Ref)

	resp := openapi.ResponseJSON("Verdict", "Result")
	assert.Equal(t, "Verdict", resp.Description)
	assert.Equal(t, "#/components/schemas/Result", resp.Content["application/json"].Schema.Ref)
}

func TestAddComponents(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{
		"Record": {Type: "object", AdditionalProperties: &openapi.Schema{Type: "number"}},
	})
	c.AddResponses(map[string]*openapi.Response{
		"Teapot": {Description: "short and stout"},
	})

	assert.Equal(t, "number", c.Schemas["Record"].AdditionalProperties.Type)
	assert.Contains(t, c.Schemas, "Error")
	assert.Contains(t, c.Responses, "Teapot")
	assert.Contains(t, c.Responses, "BadRequest")
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{Title: "Test"}, "1.0.0")
	spec.Paths["/predict"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Classify",
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("ok", "Result"),
			},
		},
	}

	data, err := openapi.MarshalJSON(spec)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, strconv.Itoa(len(data)), rec.Header().Get("Content-Length"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.1.0", doc["openapi"])
	assert.Contains(t, doc["paths"], "/predict")
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var c openapi.Config
		require.NoError(t, c.Finalize(nil))
		assert.Equal(t, "Fraudguard API", c.Title)
		assert.Equal(t, "/openapi.json", c.Path)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("TEST_OPENAPI_PATH", "/spec.json")
		c := openapi.Config{Title: "Custom"}
		require.NoError(t, c.Finalize(&openapi.ConfigEnv{Path: "TEST_OPENAPI_PATH"}))
		assert.Equal(t, "Custom", c.Title)
		assert.Equal(t, "/spec.json", c.Path)
	})

	t.Run("relative path", func(t *testing.T) {
		c := openapi.Config{Path: "spec.json"}
		assert.Error(t, c.Finalize(nil))
	})

	t.Run("merge keeps unset fields", func(t *testing.T) {
		c := openapi.Config{Title: "Base", Path: "/a.json"}
		c.Merge(&openapi.Config{Path: "/b.json"})
		assert.Equal(t, "Base", c.Title)
		assert.Equal(t, "/b.json", c.Path)
	})
}
