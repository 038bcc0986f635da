package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/forms",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: ok},
			{Method: "GET", Pattern: "/{id}", Handler: ok},
			{Method: "DELETE", Pattern: "/{id}", Handler: ok},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/status",
				Routes: []routes.Route{{Method: "PATCH", Pattern: "", Handler: ok}},
			},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"list", "GET", "/forms", http.StatusOK},
		{"find", "GET", "/forms/3", http.StatusOK},
		{"delete", "DELETE", "/forms/3", http.StatusOK},
		{"child", "PATCH", "/forms/3/status", http.StatusOK},
		{"wrong method", "POST", "/forms/3", http.StatusMethodNotAllowed},
		{"unknown", "GET", "/nothing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGroupMiddlewareIsInherited(t *testing.T) {
	var hits []string
	tag := func(name string) middleware.Func {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits = append(hits, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix:     "/revalidations",
		Middleware: []middleware.Func{tag("parent")},
		Routes:     []routes.Route{{Method: "GET", Pattern: "", Handler: ok}},
		Children: []routes.Group{
			{
				Prefix:     "/exports",
				Middleware: []middleware.Func{tag("child")},
				Routes:     []routes.Route{{Method: "POST", Pattern: "", Handler: ok}},
			},
		},
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/revalidations/exports", nil))
	if len(hits) != 2 || hits[0] != "parent" || hits[1] != "child" {
		t.Errorf("child route hits: got %v, want [parent child]", hits)
	}

	hits = nil
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/revalidations", nil))
	if len(hits) != 1 || hits[0] != "parent" {
		t.Errorf("parent route hits: got %v, want [parent]", hits)
	}
}
