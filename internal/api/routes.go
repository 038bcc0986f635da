package api

import (
	"net/http"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Forms.Handler().Routes(),
		domain.Revalidations.Handler().Routes(),
		domain.Dashboard.Handler().Routes(),
	)
}
