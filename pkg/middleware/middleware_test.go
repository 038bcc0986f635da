package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplyOrder(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Func {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mw := middleware.New(tag("first"))
	mw.Use(tag("second"), nil)

	if mw.Len() != 2 {
		t.Fatalf("len: got %d, want 2", mw.Len())
	}

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "handler" {
		t.Errorf("order: got %v, want [first second handler]", order)
	}
}

func TestCORSDisabled(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: false, Origins: []string{"http://example.com"}}
	handler := middleware.CORS(cfg)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://example.com")
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("CORS headers should not be set when disabled")
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://panel.example.com"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	}
	handler := middleware.CORS(cfg)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://panel.example.com")
	handler.ServeHTTP(rec, req)

	h := rec.Header()
	if got := h.Get("Access-Control-Allow-Origin"); got != "http://panel.example.com" {
		t.Errorf("allow-origin: got %q", got)
	}
	if got := h.Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Errorf("allow-methods: got %q", got)
	}
	if got := h.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("allow-credentials: got %q", got)
	}
	if got := h.Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("max-age: got %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: true, Origins: []string{"http://panel.example.com"}}
	handler := middleware.CORS(cfg)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("disallowed origin should not receive CORS headers")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: true, Origins: []string{"http://panel.example.com"}}
	called := false
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://panel.example.com")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rec.Code)
	}
	if called {
		t.Error("preflight should not reach the handler")
	}
}

func TestCORSFinalizeDefaults(t *testing.T) {
	cfg := &middleware.CORSConfig{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if len(cfg.AllowedMethods) == 0 || len(cfg.AllowedHeaders) == 0 {
		t.Error("defaults should populate methods and headers")
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max age: got %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://a.example.com, http://b.example.com")

	cfg := &middleware.CORSConfig{}
	env := &middleware.CORSEnv{Enabled: "TEST_CORS_ENABLED", Origins: "TEST_CORS_ORIGINS"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled should be overridden by env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b.example.com" {
		t.Errorf("origins: got %v", cfg.Origins)
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/revalidations?status=expired", nil))

	out := buf.String()
	for _, want := range []string{"status=418", "method=GET", "uri=\"/api/revalidations?status=expired\""} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

type stubVerifier struct {
	token *oidc.IDToken
	err   error
}

func (s stubVerifier) Verify(ctx context.Context, raw string) (*oidc.IDToken, error) {
	return s.token, s.err
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   stubVerifier
		wantStatus int
	}{
		{"missing header", "", stubVerifier{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubVerifier{}, http.StatusUnauthorized},
		{"empty token", "Bearer ", stubVerifier{}, http.StatusUnauthorized},
		{"rejected token", "Bearer abc", stubVerifier{err: errors.New("expired")}, http.StatusUnauthorized},
		{"valid token", "Bearer abc", stubVerifier{token: &oidc.IDToken{Subject: "tech-42"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subject string
			handler := middleware.Auth(tt.verifier, discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject, _ = middleware.Subject(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && subject != "tech-42" {
				t.Errorf("subject: got %q, want tech-42", subject)
			}
		})
	}
}

func TestAuthPreflightPassesThrough(t *testing.T) {
	handler := middleware.Auth(stubVerifier{err: errors.New("no")}, discard())(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestAuthFinalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     middleware.AuthConfig
		wantErr bool
	}{
		{"disabled needs nothing", middleware.AuthConfig{}, false},
		{"enabled without issuer", middleware.AuthConfig{Enabled: true, ClientID: "panel"}, true},
		{"enabled without client", middleware.AuthConfig{Enabled: true, Issuer: "https://login.example.com"}, true},
		{"enabled complete", middleware.AuthConfig{Enabled: true, Issuer: "https://login.example.com", ClientID: "panel"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("error: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaxBytes(t *testing.T) {
	var readErr error
	handler := middleware.MaxBytes(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/", strings.NewReader("0123456789")))
	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Errorf("oversized body: got %v, want MaxBytesError", readErr)
	}

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/", strings.NewReader("short")))
	if readErr != nil {
		t.Errorf("small body: got %v", readErr)
	}
}

func TestCacheControl(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.CacheControl("no-store")(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("cache-control: got %q", got)
	}
}
