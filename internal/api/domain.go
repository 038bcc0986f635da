package api

import (
	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/dashboard"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/forms"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/revalidations"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Forms         forms.System
	Revalidations revalidations.System
	Dashboard     dashboard.System
}

// NewDomain creates all domain systems from the API runtime. Approved forms
// feed the revalidation report, which in turn feeds the dashboard summary.
func NewDomain(runtime *Runtime) *Domain {
	formsSystem := forms.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	revalidationsSystem := revalidations.New(
		formsSystem,
		runtime.Storage,
		runtime.Clock,
		runtime.Logger,
	)

	dashboardSystem := dashboard.New(
		runtime.Database.Connection(),
		revalidationsSystem,
		runtime.Clock,
		runtime.Logger,
	)

	return &Domain{
		Forms:         formsSystem,
		Revalidations: revalidationsSystem,
		Dashboard:     dashboardSystem,
	}
}
