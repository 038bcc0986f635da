package revalidations

import (
	"time"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
)

// Report is the classified, filtered revalidation view of every approved form.
type Report struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Criteria    revalidation.Criteria `json:"criteria"`
	Records     []revalidation.Record `json:"records"`
	Summary     revalidation.Summary  `json:"summary"`
	Skipped     int                   `json:"skipped"`
	SkippedIDs  []int64               `json:"skipped_ids"`
	Warnings    []Warning             `json:"warnings"`
}

// Warning describes an approved form left out of the report.
type Warning struct {
	ID     int64  `json:"id"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Archive describes an export stored in blob storage.
type Archive struct {
	Key       string    `json:"key"`
	Format    Format    `json:"format"`
	Records   int       `json:"records"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

func newReport(result revalidation.Result, records []revalidation.Record, criteria revalidation.Criteria, now time.Time) *Report {
	warnings := make([]Warning, len(result.Warnings))
	for i, w := range result.Warnings {
		warnings[i] = Warning{ID: w.ID, Field: w.Field, Reason: w.Reason()}
	}

	return &Report{
		GeneratedAt: now,
		Criteria:    criteria,
		Records:     records,
		Summary:     revalidation.Summarize(records),
		Skipped:     result.Skipped(),
		SkippedIDs:  result.SkippedIDs(),
		Warnings:    warnings,
	}
}
