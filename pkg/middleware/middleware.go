// Package middleware provides the HTTP middleware stack and the CORS,
// request logging, and bearer authentication middleware built on it.
package middleware

import "net/http"

// Func wraps an http.Handler.
type Func = func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware.
type System interface {
	Use(mw ...Func)
	Apply(handler http.Handler) http.Handler
	Len() int
}

type stack struct {
	fns []Func
}

// New creates a System seeded with mw. The first entry is outermost.
func New(mw ...Func) System {
	s := &stack{}
	s.Use(mw...)
	return s
}

func (s *stack) Use(mw ...Func) {
	for _, fn := range mw {
		if fn != nil {
			s.fns = append(s.fns, fn)
		}
	}
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.fns) - 1; i >= 0; i-- {
		handler = s.fns[i](handler)
	}
	return handler
}

func (s *stack) Len() int {
	return len(s.fns)
}
