package forms

import (
	"slices"
	"strings"
	"time"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/cnpj"
)

// Form statuses in the supplier review workflow.
const (
	StatusInProgress         = "in_progress"
	StatusSubmitted          = "submitted"
	StatusInReview           = "in_review"
	StatusApproved           = "approved"
	StatusRejected           = "rejected"
	StatusPendingInformation = "pending_information"
)

// Statuses lists every valid form status.
var Statuses = []string{
	StatusInProgress,
	StatusSubmitted,
	StatusInReview,
	StatusApproved,
	StatusRejected,
	StatusPendingInformation,
}

// Risk levels run from 1 (low) to 4 (critical).
const (
	MinRiskLevel = 1
	MaxRiskLevel = 4
)

// Form is a supplier's HSE compliance submission.
type Form struct {
	ID                    int64      `json:"id"`
	CompanyName           string     `json:"company_name"`
	CNPJ                  string     `json:"cnpj"`
	Status                string     `json:"status"`
	RiskLevel             int        `json:"risk_level"`
	ResponsibleTechnician *string    `json:"responsible_technician,omitempty"`
	SubmittedAt           time.Time  `json:"submitted_at"`
	ApprovedAt            *time.Time `json:"approved_at,omitempty"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// CreateCommand registers a new form.
type CreateCommand struct {
	CompanyName           string  `json:"company_name"`
	CNPJ                  string  `json:"cnpj"`
	RiskLevel             int     `json:"risk_level"`
	ResponsibleTechnician *string `json:"responsible_technician,omitempty"`
}

// Validate trims and normalizes the command in place.
func (c *CreateCommand) Validate() error {
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	if c.CompanyName == "" {
		return ErrMissingCompany
	}
	if !cnpj.Valid(c.CNPJ) {
		return ErrInvalidTaxID
	}
	c.CNPJ = cnpj.Normalize(c.CNPJ)
	if !ValidRiskLevel(c.RiskLevel) {
		return ErrInvalidRiskLevel
	}
	c.ResponsibleTechnician = trimOptional(c.ResponsibleTechnician)
	return nil
}

// StatusCommand moves a form to a new status. A non-nil technician replaces
// the assigned one.
type StatusCommand struct {
	Status                string  `json:"status"`
	ResponsibleTechnician *string `json:"responsible_technician,omitempty"`
}

func (c *StatusCommand) Validate() error {
	if !ValidStatus(c.Status) {
		return ErrInvalidStatus
	}
	c.ResponsibleTechnician = trimOptional(c.ResponsibleTechnician)
	return nil
}

func ValidStatus(s string) bool {
	return slices.Contains(Statuses, s)
}

func ValidRiskLevel(level int) bool {
	return level >= MinRiskLevel && level <= MaxRiskLevel
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
