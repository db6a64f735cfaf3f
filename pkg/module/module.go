// Package module mounts independently configured HTTP handlers under
// single-level path prefixes.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/fraudguard/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner router
// with its own middleware stack.
type Module struct {
	prefix string
	router http.Handler
	stack  middleware.Stack
}

// New creates a Module with the given single-level prefix (e.g. "/api").
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{prefix: prefix, router: router}
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	return m.stack.Apply(m.router)
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw middleware.Middleware) {
	m.stack.Use(mw)
}

// ServeHTTP strips the module prefix from the request path and dispatches to the inner router.
func (m *Module) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, stripPrefix(req, m.prefix))
}

func stripPrefix(req *http.Request, prefix string) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, prefix)
	if path == "" {
		path = "/"
	}

	r := req.Clone(req.Context())
	r.URL = new(url.URL)
	*r.URL = *req.URL
	r.URL.Path = path
	r.URL.RawPath = ""
	return r
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
