// Package revalidation derives annual revalidation deadlines for approved
// supplier forms. It classifies each form by the number of days left until its
// revalidation date and filters the resulting set for display.
//
// Classify and Filter are pure: the current time is always supplied by the caller.
package revalidation

import (
	"fmt"
	"time"
)

// UnspecifiedTechnician is the sentinel used when a form has no responsible technician.
const UnspecifiedTechnician = "unspecified"

// DueSoonWindow is the number of days before the deadline at which a form becomes due soon.
const DueSoonWindow = 90

// Status is the revalidation bucket of a form.
type Status string

const (
	OnTrack Status = "on_track"
	DueSoon Status = "due_soon"
	Expired Status = "expired"
)

// Statuses lists every status in display order.
var Statuses = []Status{Expired, DueSoon, OnTrack}

// StatusFor returns the bucket for a remaining-days count.
// Negative values are expired; 0 through DueSoonWindow inclusive are due soon.
func StatusFor(days int) Status {
	switch {
	case days < 0:
		return Expired
	case days <= DueSoonWindow:
		return DueSoon
	default:
		return OnTrack
	}
}

// ParseStatus resolves a status key. Unknown keys return false.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case OnTrack:
		return "On track"
	case DueSoon:
		return "Due soon"
	case Expired:
		return "Expired"
	}
	return string(s)
}

// ApprovedForm is a form that has already been approved upstream.
// A nil ApprovedAt means the approval time is missing; a zero value means it
// could not be parsed.
type ApprovedForm struct {
	ID                    int64      `json:"id"`
	CompanyName           string     `json:"company_name"`
	TaxID                 string     `json:"tax_id"`
	ApprovedAt            *time.Time `json:"approved_at"`
	RiskLevel             int        `json:"risk_level"`
	ResponsibleTechnician string     `json:"responsible_technician"`
}

// Record is an approved form with its derived revalidation state.
type Record struct {
	ID                    int64     `json:"id"`
	CompanyName           string    `json:"company_name"`
	TaxID                 string    `json:"tax_id"`
	ApprovedAt            time.Time `json:"approved_at"`
	RiskLevel             int       `json:"risk_level"`
	ResponsibleTechnician string    `json:"responsible_technician"`
	NextRevalidation      time.Time `json:"next_revalidation"`
	DaysUntilExpiration   int       `json:"days_until_expiration"`
	Status                Status    `json:"status"`
}

// Summary counts records per status.
type Summary struct {
	Total   int `json:"total"`
	OnTrack int `json:"on_track"`
	DueSoon int `json:"due_soon"`
	Expired int `json:"expired"`
}

// Summarize counts the records in each status bucket.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case OnTrack:
			s.OnTrack++
		case DueSoon:
			s.DueSoon++
		case Expired:
			s.Expired++
		}
	}
	return s
}

// DaysLabel renders a remaining-days count as "N days" or "N days overdue".
func DaysLabel(days int) string {
	n := days
	if n < 0 {
		n = -n
	}

	unit := "days"
	if n == 1 {
		unit = "day"
	}

	if days < 0 {
		return fmt.Sprintf("%d %s overdue", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
