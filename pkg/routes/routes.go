// Package routes declares handler tables and registers them on a ServeMux
// using method-qualified patterns.
package routes

import (
	"net/http"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group collects routes under a shared prefix. Middleware applies to the
// group's routes and to every child group.
type Group struct {
	Prefix     string
	Middleware []middleware.Func
	Routes     []Route
	Children   []Group
}

// Register adds all routes from groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", nil, g)
	}
}

func register(mux *http.ServeMux, prefix string, inherited []middleware.Func, g Group) {
	prefix += g.Prefix

	chain := make([]middleware.Func, 0, len(inherited)+len(g.Middleware))
	chain = append(chain, inherited...)
	chain = append(chain, g.Middleware...)
	stack := middleware.New(chain...)

	for _, r := range g.Routes {
		mux.Handle(r.Method+" "+prefix+r.Pattern, stack.Apply(r.Handler))
	}
	for _, child := range g.Children {
		register(mux, prefix, chain, child)
	}
}
