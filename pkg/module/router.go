package module

import (
	"net/http"
	"slices"
	"strings"
)

// Router dispatches requests to mounted modules by their first path segment.
// Paths that match no module fall through to a native ServeMux.
type Router struct {
	modules map[string]*Module
	native  *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// HandleNative registers a handler on the fallback mux. Patterns follow
// http.ServeMux syntax, including method prefixes.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers m under its prefix, replacing any module already there.
func (r *Router) Mount(m *Module) {
	r.modules[m.prefix] = m
}

// Prefixes lists the mounted module prefixes in sorted order.
func (r *Router) Prefixes() []string {
	prefixes := make([]string, 0, len(r.modules))
	for p := range r.modules {
		prefixes = append(prefixes, p)
	}
	slices.Sort(prefixes)
	return prefixes
}

// ServeHTTP trims a single trailing slash, so "/api/predict/" and
// "/api/predict" reach the same route, then dispatches.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = p[:len(p)-1]
	}

	if m := r.match(req.URL.Path); m != nil {
		m.ServeHTTP(w, req)
		return
	}
	r.native.ServeHTTP(w, req)
}

func (r *Router) match(path string) *Module {
	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return r.modules["/"+segment]
}
