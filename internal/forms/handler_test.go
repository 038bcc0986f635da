package forms_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/forms"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/pagination"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/routes"
)

type mockSystem struct {
	listFn     func(ctx context.Context, page pagination.PageRequest, filters forms.Filters) (*pagination.PageResult[forms.Form], error)
	findFn     func(ctx context.Context, id int64) (*forms.Form, error)
	createFn   func(ctx context.Context, cmd forms.CreateCommand) (*forms.Form, error)
	statusFn   func(ctx context.Context, id int64, cmd forms.StatusCommand) (*forms.Form, error)
	deleteFn   func(ctx context.Context, id int64) error
	approvedFn func(ctx context.Context) ([]revalidation.ApprovedForm, error)
}

func (m *mockSystem) Handler() *forms.Handler { return newTestHandler(m) }

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters forms.Filters) (*pagination.PageResult[forms.Form], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id int64) (*forms.Form, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd forms.CreateCommand) (*forms.Form, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) UpdateStatus(ctx context.Context, id int64, cmd forms.StatusCommand) (*forms.Form, error) {
	return m.statusFn(ctx, id, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockSystem) Approved(ctx context.Context) ([]revalidation.ApprovedForm, error) {
	return m.approvedFn(ctx)
}

func newTestHandler(sys forms.System) *forms.Handler {
	return forms.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *forms.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func sampleForm() forms.Form {
	approved := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return forms.Form{
		ID:          7,
		CompanyName: "Acme Engenharia",
		CNPJ:        "11222333000181",
		Status:      forms.StatusApproved,
		RiskLevel:   3,
		SubmittedAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		ApprovedAt:  &approved,
		UpdatedAt:   approved,
	}
}

func TestHandlerList(t *testing.T) {
	var gotPage pagination.PageRequest
	var gotFilters forms.Filters

	sys := &mockSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters forms.Filters) (*pagination.PageResult[forms.Form], error) {
			gotPage, gotFilters = page, filters
			result := pagination.NewPageResult([]forms.Form{sampleForm()}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/forms?page=2&page_size=500&status=approved&risk_level=3&cnpj=11.222.333/0001-81", nil)
	setupMux(newTestHandler(sys)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotPage.Page != 2 || gotPage.PageSize != 100 {
		t.Errorf("page: got %+v, want page 2 size 100", gotPage)
	}
	if gotFilters.Status == nil || *gotFilters.Status != "approved" {
		t.Errorf("status filter: got %v", gotFilters.Status)
	}
	if gotFilters.RiskLevel == nil || *gotFilters.RiskLevel != 3 {
		t.Errorf("risk filter: got %v", gotFilters.RiskLevel)
	}

	var body pagination.PageResult[forms.Form]
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].CNPJ != "11222333000181" {
		t.Errorf("data: got %+v", body.Data)
	}
}

func TestHandlerSearch(t *testing.T) {
	var gotFilters forms.Filters
	sys := &mockSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters forms.Filters) (*pagination.PageResult[forms.Form], error) {
			gotFilters = filters
			result := pagination.NewPageResult[forms.Form](nil, 0, page.Page, page.PageSize)
			return &result, nil
		},
	}

	body := `{"page": 1, "search": "acme", "sort": "-SubmittedAt", "company_name": "Acme Engenharia"}`
	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("POST", "/forms/search", bytes.NewBufferString(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotFilters.CompanyName == nil || *gotFilters.CompanyName != "Acme Engenharia" {
		t.Errorf("company filter: got %v", gotFilters.CompanyName)
	}

	rec = httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("POST", "/forms/search", bytes.NewBufferString("{")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status: got %d, want 400", rec.Code)
	}
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(ctx context.Context, id int64) (*forms.Form, error) {
			if id != 7 {
				return nil, forms.ErrNotFound
			}
			f := sampleForm()
			return &f, nil
		},
	}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"found", "/forms/7", http.StatusOK},
		{"not found", "/forms/8", http.StatusNotFound},
		{"not a number", "/forms/abc", http.StatusBadRequest},
		{"zero", "/forms/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerCreate(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"created", `{"company_name": "Acme", "cnpj": "11.222.333/0001-81", "risk_level": 2}`, nil, http.StatusCreated},
		{"invalid cnpj", `{"company_name": "Acme", "cnpj": "123", "risk_level": 2}`, forms.ErrInvalidTaxID, http.StatusBadRequest},
		{"invalid risk", `{"company_name": "Acme", "cnpj": "11222333000181", "risk_level": 9}`, forms.ErrInvalidRiskLevel, http.StatusBadRequest},
		{"duplicate", `{"company_name": "Acme", "cnpj": "11222333000181", "risk_level": 1}`, forms.ErrDuplicate, http.StatusConflict},
		{"malformed", `not json`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				createFn: func(ctx context.Context, cmd forms.CreateCommand) (*forms.Form, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					f := sampleForm()
					f.Status = forms.StatusInProgress
					return &f, nil
				},
			}

			rec := httptest.NewRecorder()
			setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("POST", "/forms", bytes.NewBufferString(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerUpdateStatus(t *testing.T) {
	var gotID int64
	var gotCmd forms.StatusCommand

	sys := &mockSystem{
		statusFn: func(ctx context.Context, id int64, cmd forms.StatusCommand) (*forms.Form, error) {
			gotID, gotCmd = id, cmd
			if cmd.Status == "archived" {
				return nil, forms.ErrInvalidStatus
			}
			f := sampleForm()
			return &f, nil
		},
	}

	rec := httptest.NewRecorder()
	body := `{"status": "approved", "responsible_technician": "Maria Souza"}`
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("PATCH", "/forms/7/status", bytes.NewBufferString(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotID != 7 || gotCmd.Status != forms.StatusApproved {
		t.Errorf("call: got id=%d cmd=%+v", gotID, gotCmd)
	}
	if gotCmd.ResponsibleTechnician == nil || *gotCmd.ResponsibleTechnician != "Maria Souza" {
		t.Errorf("technician: got %v", gotCmd.ResponsibleTechnician)
	}

	rec = httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("PATCH", "/forms/7/status", bytes.NewBufferString(`{"status": "archived"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status: got %d, want 400", rec.Code)
	}
}

func TestHandlerDelete(t *testing.T) {
	sys := &mockSystem{
		deleteFn: func(ctx context.Context, id int64) error {
			if id == 404 {
				return forms.ErrNotFound
			}
			return nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("DELETE", "/forms/7", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: got %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("DELETE", "/forms/404", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing: got %d, want 404", rec.Code)
	}
}
