package openapi

import (
	"net/http"
	"strconv"
)

// Version is the OpenAPI version the documents declare.
const Version = "3.1.0"

// Spec represents an OpenAPI 3.1 specification document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Tags       []*Tag               `json:"tags,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewSpec creates a Spec titled and described by cfg at the given API
// version, with the default components.
func NewSpec(cfg *Config, version string) *Spec {
	return &Spec{
		OpenAPI: Version,
		Info: &Info{
			Title:       cfg.Title,
			Version:     version,
			Description: cfg.Description,
		},
		Components: NewComponents(),
		Paths:      make(map[string]*PathItem),
	}
}

// AddServer appends a server URL to the spec.
func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddTag declares an operation tag.
func (s *Spec) AddTag(name, description string) {
	s.Tags = append(s.Tags, &Tag{Name: name, Description: description})
}

// ServeSpec returns a handler that serves pre-serialized JSON spec bytes.
func ServeSpec(specBytes []byte) http.HandlerFunc {
	length := strconv.Itoa(len(specBytes))
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Length", length)
		w.WriteHeader(http.StatusOK)
		w.Write(specBytes)
	}
}
