package dashboard

import (
	"time"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
)

// DefaultMonths is the length of the monthly submission series.
const DefaultMonths = 12

// Overview aggregates the metrics shown on the control panel landing tab.
type Overview struct {
	GeneratedAt   time.Time            `json:"generated_at"`
	Total         int                  `json:"total"`
	ByStatus      map[string]int       `json:"by_status"`
	ByRiskLevel   map[int]int          `json:"by_risk_level"`
	Monthly       []MonthBucket        `json:"monthly"`
	Revalidations revalidation.Summary `json:"revalidations"`
}

// MonthBucket counts submissions in one calendar month.
type MonthBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// BucketByMonth counts times per calendar month over the months ending with
// now's month. Buckets are oldest first and zero-filled; times outside the
// window are ignored. Months are evaluated in now's location.
func BucketByMonth(times []time.Time, now time.Time, months int) []MonthBucket {
	if months <= 0 {
		return []MonthBucket{}
	}

	loc := now.Location()
	first := WindowStart(now, months)
	base := monthIndex(first)

	buckets := make([]MonthBucket, months)
	for i := range buckets {
		buckets[i].Month = first.AddDate(0, i, 0).Format("2006-01")
	}

	for _, t := range times {
		i := monthIndex(t.In(loc)) - base
		if i >= 0 && i < months {
			buckets[i].Count++
		}
	}
	return buckets
}

// WindowStart returns the first instant counted by BucketByMonth.
func WindowStart(now time.Time, months int) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
