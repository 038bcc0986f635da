package revalidation

import (
	"cmp"
	"math"
	"slices"
	"time"
)

const day = 24 * time.Hour

// Result holds classified records along with the forms that were skipped.
type Result struct {
	Records  []Record
	Warnings []*InvalidRecordError
}

// Skipped returns the number of excluded forms.
func (r Result) Skipped() int {
	return len(r.Warnings)
}

// SkippedIDs returns the identifiers of excluded forms in input order.
func (r Result) SkippedIDs() []int64 {
	ids := make([]int64, len(r.Warnings))
	for i, w := range r.Warnings {
		ids[i] = w.ID
	}
	return ids
}

// NextRevalidation returns the date one calendar year after approval.
// Feb 29 rolls over to Mar 1 in non-leap years.
func NextRevalidation(approvedAt time.Time) time.Time {
	return approvedAt.AddDate(1, 0, 0)
}

// DaysUntil returns the whole days from now until deadline, rounded up.
// Past deadlines yield negative values.
func DaysUntil(deadline, now time.Time) int {
	return int(math.Ceil(float64(deadline.Sub(now)) / float64(day)))
}

// Classify derives the revalidation record of each approved form relative to now
// and sorts the result by days remaining, soonest first. Forms with a missing or
// invalid approval timestamp are reported in Warnings and left out of Records.
func Classify(forms []ApprovedForm, now time.Time) Result {
	result := Result{
		Records: make([]Record, 0, len(forms)),
	}

	for _, f := range forms {
		rec, err := classify(f, now)
		if err != nil {
			result.Warnings = append(result.Warnings, err)
			continue
		}
		result.Records = append(result.Records, rec)
	}

	slices.SortStableFunc(result.Records, func(a, b Record) int {
		return cmp.Compare(a.DaysUntilExpiration, b.DaysUntilExpiration)
	})

	return result
}

func classify(f ApprovedForm, now time.Time) (Record, *InvalidRecordError) {
	if f.ApprovedAt == nil {
		return Record{}, &InvalidRecordError{ID: f.ID, Field: "approved_at", Err: ErrMissingApproval}
	}
	if f.ApprovedAt.IsZero() {
		return Record{}, &InvalidRecordError{ID: f.ID, Field: "approved_at", Err: ErrInvalidApproval}
	}

	approvedAt := *f.ApprovedAt
	next := NextRevalidation(approvedAt)
	days := DaysUntil(next, now)

	technician := f.ResponsibleTechnician
	if technician == "" {
		technician = UnspecifiedTechnician
	}

	return Record{
		ID:                    f.ID,
		CompanyName:           f.CompanyName,
		TaxID:                 f.TaxID,
		ApprovedAt:            approvedAt,
		RiskLevel:             f.RiskLevel,
		ResponsibleTechnician: technician,
		NextRevalidation:      next,
		DaysUntilExpiration:   days,
		Status:                StatusFor(days),
	}, nil
}
