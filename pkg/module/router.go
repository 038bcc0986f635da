package module

import (
	"net/http"
	"strings"
)

// Router dispatches on the first path segment to a mounted Module and
// falls back to a plain ServeMux for everything else (health probes).
type Router struct {
	modules  map[string]*Module
	fallback *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		modules:  make(map[string]*Module),
		fallback: http.NewServeMux(),
	}
}

// Mount registers m under its prefix, replacing any module already there.
func (r *Router) Mount(m *Module) {
	r.modules[m.Prefix()] = m
}

// HandleFunc registers a handler on the fallback mux.
func (r *Router) HandleFunc(pattern string, fn http.HandlerFunc) {
	r.fallback.HandleFunc(pattern, fn)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = strings.TrimSuffix(p, "/")
	}

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.ServeHTTP(w, req)
		return
	}

	r.fallback.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	rest := strings.TrimPrefix(path, "/")
	seg, _, _ := strings.Cut(rest, "/")
	return "/" + seg
}
