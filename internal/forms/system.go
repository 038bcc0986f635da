// Package forms manages supplier HSE form submissions and their review status.
package forms

import (
	"context"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/pagination"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
)

// System defines the public contract for form domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Form], error)

	Find(ctx context.Context, id int64) (*Form, error)
	Create(ctx context.Context, cmd CreateCommand) (*Form, error)
	UpdateStatus(ctx context.Context, id int64, cmd StatusCommand) (*Form, error)
	Delete(ctx context.Context, id int64) error

	// Approved returns every form in the approved status, oldest approval first.
	Approved(ctx context.Context) ([]revalidation.ApprovedForm, error)
}
