package forms

import (
	"database/sql"
	"net/url"
	"strconv"
	"time"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/cnpj"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/query"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/repository"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
)

var projection = query.
	NewProjectionMap("public", "forms", "f").
	Project("id", "ID").
	Project("company_name", "CompanyName").
	Project("cnpj", "CNPJ").
	Project("status", "Status").
	Project("risk_level", "RiskLevel").
	Project("responsible_technician", "ResponsibleTechnician").
	Project("submitted_at", "SubmittedAt").
	Project("approved_at", "ApprovedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "SubmittedAt",
	Descending: true,
}

const returning = `id, company_name, cnpj, status, risk_level, responsible_technician, submitted_at, approved_at, updated_at`

// Filters narrows form queries. Nil fields are ignored; all matches are exact.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	RiskLevel   *int    `json:"risk_level,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	CNPJ        *string `json:"cnpj,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var taxID *string
	if f.CNPJ != nil {
		n := cnpj.Normalize(*f.CNPJ)
		taxID = &n
	}

	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("RiskLevel", f.RiskLevel).
		WhereEquals("CompanyName", f.CompanyName).
		WhereEquals("CNPJ", taxID)
}

// FiltersFromQuery reads status, risk_level, company_name, and cnpj.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if rl := values.Get("risk_level"); rl != "" {
		if v, err := strconv.Atoi(rl); err == nil {
			f.RiskLevel = &v
		}
	}
	if c := values.Get("company_name"); c != "" {
		f.CompanyName = &c
	}
	if c := values.Get("cnpj"); c != "" {
		f.CNPJ = &c
	}

	return f
}

func scanForm(s repository.Scanner) (Form, error) {
	var (
		f          Form
		technician sql.NullString
		approvedAt sql.NullTime
	)

	err := s.Scan(
		&f.ID,
		&f.CompanyName,
		&f.CNPJ,
		&f.Status,
		&f.RiskLevel,
		&technician,
		&f.SubmittedAt,
		&approvedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return f, err
	}

	if technician.Valid {
		f.ResponsibleTechnician = &technician.String
	}
	if approvedAt.Valid {
		f.ApprovedAt = &approvedAt.Time
	}
	return f, nil
}

// ToApproved converts a stored form into the classifier's input shape.
// A blank technician becomes revalidation.UnspecifiedTechnician.
func ToApproved(f Form) revalidation.ApprovedForm {
	technician := revalidation.UnspecifiedTechnician
	if f.ResponsibleTechnician != nil && *f.ResponsibleTechnician != "" {
		technician = *f.ResponsibleTechnician
	}

	var approvedAt *time.Time
	if f.ApprovedAt != nil {
		t := *f.ApprovedAt
		approvedAt = &t
	}

	return revalidation.ApprovedForm{
		ID:                    f.ID,
		CompanyName:           f.CompanyName,
		TaxID:                 f.CNPJ,
		ApprovedAt:            approvedAt,
		RiskLevel:             f.RiskLevel,
		ResponsibleTechnician: technician,
	}
}
