// Package module mounts prefix-scoped handlers, each with its own middleware
// stack, behind a single top-level router.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
)

// Module serves every request under a single-level prefix such as "/api".
// The prefix is stripped before the request reaches the inner handler.
type Module struct {
	prefix     string
	inner      http.Handler
	middleware middleware.System
}

// New creates a Module. It panics on an empty, relative, or nested prefix.
func New(prefix string, inner http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		inner:      inner,
		middleware: middleware.New(),
	}
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module stack.
func (m *Module) Use(mw ...middleware.Func) {
	m.middleware.Use(mw...)
}

// Handler returns the inner handler wrapped by the module stack.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.inner)
}

// ServeHTTP strips the prefix and dispatches through the module stack.
func (m *Module) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, m.prefix)
	if rest == "" {
		rest = "/"
	}

	r2 := r.Clone(r.Context())
	r2.URL.Path = rest
	r2.URL.RawPath = ""

	m.Handler().ServeHTTP(w, r2)
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1 || len(prefix) == 1:
		return fmt.Errorf("module prefix must be a single path segment: %s", prefix)
	}
	return nil
}
