package forms

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/pagination"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/query"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/repository"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a form repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "forms"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Form], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "CompanyName", "CNPJ")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count forms: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanForm)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Form, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	f, err := repository.QueryOne(ctx, r.db, q, args, scanForm)
	if err != nil {
		return nil, formErrors.Map(err)
	}
	return &f, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Form, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO forms(company_name, cnpj, risk_level, responsible_technician)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + returning

	args := []any{cmd.CompanyName, cmd.CNPJ, cmd.RiskLevel, cmd.ResponsibleTechnician}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Form, error) {
		return repository.QueryOne(ctx, tx, q, args, scanForm)
	})
	if err != nil {
		return nil, formErrors.Map(err)
	}

	r.logger.Info("form created", "id", f.ID, "company", f.CompanyName)
	return &f, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, cmd StatusCommand) (*Form, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE forms SET
			status = $2,
			approved_at = CASE WHEN $2 = 'approved' THEN COALESCE(approved_at, NOW()) END,
			responsible_technician = COALESCE($3, responsible_technician),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + returning

	args := []any{id, cmd.Status, cmd.ResponsibleTechnician}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Form, error) {
		return repository.QueryOne(ctx, tx, q, args, scanForm)
	})
	if err != nil {
		return nil, formErrors.Map(err)
	}

	r.logger.Info("form status updated", "id", f.ID, "status", f.Status)
	return &f, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecOne(ctx, tx, "DELETE FROM forms WHERE id = $1", id)
	})
	if err != nil {
		return formErrors.Map(err)
	}

	r.logger.Info("form deleted", "id", id)
	return nil
}

func (r *repo) Approved(ctx context.Context) ([]revalidation.ApprovedForm, error) {
	status := StatusApproved
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "ApprovedAt"}, query.SortField{Field: "ID"}).
		WhereEquals("Status", &status).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanForm)
	if err != nil {
		return nil, fmt.Errorf("query approved forms: %w", err)
	}

	approved := make([]revalidation.ApprovedForm, len(items))
	for i, f := range items {
		approved[i] = ToApproved(f)
	}
	return approved, nil
}

// The only CHECK constraint a validated command can trip is the risk level range.
var formErrors = repository.ErrorMap{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
	Check:     ErrInvalidRiskLevel,
}
