package revalidation

import "strings"

// All disables the status or company filter.
const All = "all"

// Criteria selects records for display. Empty values and All disable a filter.
// Status and Company use exact matching; CompanySearch is a case-insensitive
// substring match against the company name.
type Criteria struct {
	Status        string `json:"status,omitempty"`
	Company       string `json:"company,omitempty"`
	CompanySearch string `json:"search,omitempty"`
}

// Filter returns the records matching every criterion, preserving their order.
// The input slice is not modified. An unknown status key fails the whole call.
func Filter(records []Record, c Criteria) ([]Record, error) {
	var status Status
	if c.Status != "" && c.Status != All {
		st, ok := ParseStatus(c.Status)
		if !ok {
			return nil, &InvalidCriteriaError{Option: "status", Value: c.Status}
		}
		status = st
	}

	company := c.Company
	if company == All {
		company = ""
	}

	search := strings.ToLower(c.CompanySearch)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if status != "" && r.Status != status {
			continue
		}
		if company != "" && r.CompanyName != company {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.CompanyName), search) {
			continue
		}
		out = append(out, r)
	}

	return out, nil
}
