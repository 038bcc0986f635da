package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/api"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/config"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/infrastructure"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/database"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/pagination"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "30s",
			WriteTimeout:    "2m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "hse",
			User:            "hse",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "hse-exports",
			ConnectionString: azuriteConnString,
		},
		API: config.APIConfig{
			BasePath:    "/api",
			MaxBodySize: "1KB",
			CORS:        middleware.CORSConfig{Enabled: true, Origins: []string{"http://panel.example.com"}},
			Pagination:  pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		},
		Logging:         config.LoggingConfig{Level: "error", Format: "text"},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewRuntime(t *testing.T) {
	infra := setupInfra(t)
	runtime := api.NewRuntime(validConfig(), infra)

	if runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("max page size: got %d, want 100", runtime.Pagination.MaxPageSize)
	}
	if runtime.MaxBodySize != 1024 {
		t.Errorf("max body size: got %d, want 1024", runtime.MaxBodySize)
	}
	if runtime.Logger == infra.Logger {
		t.Error("runtime logger should be scoped to the api module")
	}
	if runtime.Database != infra.Database || runtime.Storage != infra.Storage || runtime.Clock == nil {
		t.Error("runtime should share infrastructure systems")
	}
}

func TestNewDomain(t *testing.T) {
	domain := api.NewDomain(api.NewRuntime(validConfig(), setupInfra(t)))

	if domain.Forms == nil || domain.Revalidations == nil || domain.Dashboard == nil {
		t.Fatalf("domain systems missing: %+v", domain)
	}
}

func TestModuleRoutes(t *testing.T) {
	m, err := api.NewModule(validConfig(), setupInfra(t))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"invalid form id", "GET", "/api/forms/abc", "", http.StatusBadRequest},
		{"invalid export format", "GET", "/api/revalidations/export?format=pdf", "", http.StatusBadRequest},
		{"invalid as_of", "GET", "/api/revalidations?as_of=someday", "", http.StatusBadRequest},
		{"body over limit", "POST", "/api/forms", `{"company_name": "` + strings.Repeat("x", 2048) + `"}`, http.StatusBadRequest},
		{"unknown route", "GET", "/api/nothing", "", http.StatusNotFound},
		{"preflight", "OPTIONS", "/api/forms", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Origin", "http://panel.example.com")
			rec := httptest.NewRecorder()

			m.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
			if rec.Header().Get("Access-Control-Allow-Origin") != "http://panel.example.com" {
				t.Error("cors headers missing")
			}
		})
	}
}
