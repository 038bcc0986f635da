package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/handlers"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/routes"
)

// Handler serves dashboard metrics.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "dashboard"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/dashboard",
		Middleware: []middleware.Func{middleware.CacheControl("no-store")},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Overview},
		},
	}
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.sys.Overview(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, o)
}
