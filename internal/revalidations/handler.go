package revalidations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/handlers"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/routes"
)

// Handler provides HTTP endpoints for the revalidation report and its exports.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// ArchiveRequest is the body of POST /revalidations/exports.
type ArchiveRequest struct {
	revalidation.Criteria
	Format string `json:"format"`
	AsOf   string `json:"as_of,omitempty"`
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "revalidations"),
	}
}

// Routes returns the route group for revalidation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/revalidations",
		Middleware: []middleware.Func{middleware.CacheControl("no-store")},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Report},
			{Method: "GET", Pattern: "/export", Handler: h.Export},
			{Method: "POST", Pattern: "/exports", Handler: h.Archive},
		},
		Children: []routes.Group{
			{
				Prefix:     "/exports",
				Middleware: []middleware.Func{middleware.CacheControl("private, max-age=86400, immutable")},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{key...}", Handler: h.Download},
				},
			},
		},
	}
}

// Report returns the classified records matching status, company, and search.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	asOf, err := parseAsOf(q.Get("as_of"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	report, err := h.sys.Report(r.Context(), CriteriaFromQuery(q), asOf)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// Export streams the filtered report as a csv or xlsx attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format, err := ParseFormat(q.Get("format"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	asOf, err := parseAsOf(q.Get("as_of"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var buf bytes.Buffer
	if _, err := h.sys.Export(r.Context(), &buf, format, CriteriaFromQuery(q), asOf); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// Archive stores an export in blob storage and returns its key.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	var req ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	format, err := ParseFormat(req.Format)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	asOf, err := parseAsOf(req.AsOf)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	archive, err := h.sys.Archive(r.Context(), format, req.Criteria, asOf)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, archive)
}

// Download streams an archived export. The path mirrors the archive key.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key := ExportPrefix + r.PathValue("key")

	blob, err := h.sys.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Error("stream export failed", "key", key, "error", err)
	}
}

// CriteriaFromQuery reads status, company, and search.
func CriteriaFromQuery(values url.Values) revalidation.Criteria {
	return revalidation.Criteria{
		Status:        values.Get("status"),
		Company:       values.Get("company"),
		CompanySearch: values.Get("search"),
	}
}

func parseAsOf(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, ErrInvalidAsOf
}
