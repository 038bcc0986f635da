// Package dashboard computes the control panel's summary metrics.
package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/forms"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/revalidations"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/clock"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/repository"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
)

// Reporter produces the revalidation report summarized on the dashboard.
type Reporter interface {
	Report(ctx context.Context, criteria revalidation.Criteria, asOf *time.Time) (*revalidations.Report, error)
}

// System defines the public contract for dashboard metrics.
type System interface {
	Handler() *Handler
	Overview(ctx context.Context) (*Overview, error)
}

type repo struct {
	db       *sql.DB
	reporter Reporter
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates the dashboard System.
func New(db *sql.DB, reporter Reporter, clk clock.Clock, logger *slog.Logger) System {
	return &repo{
		db:       db,
		reporter: reporter,
		clock:    clk,
		logger:   logger.With("system", "dashboard"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

type bucket[K comparable] struct {
	key   K
	count int
}

func scanBucket[K comparable](s repository.Scanner) (bucket[K], error) {
	var b bucket[K]
	err := s.Scan(&b.key, &b.count)
	return b, err
}

func scanTime(s repository.Scanner) (time.Time, error) {
	var t time.Time
	err := s.Scan(&t)
	return t, err
}

// Overview runs the status, risk, monthly, and revalidation queries concurrently.
func (r *repo) Overview(ctx context.Context) (*Overview, error) {
	now := r.clock.Now()
	o := &Overview{
		GeneratedAt: now,
		ByStatus:    make(map[string]int, len(forms.Statuses)),
		ByRiskLevel: make(map[int]int, forms.MaxRiskLevel),
	}
	for _, s := range forms.Statuses {
		o.ByStatus[s] = 0
	}
	for level := forms.MinRiskLevel; level <= forms.MaxRiskLevel; level++ {
		o.ByRiskLevel[level] = 0
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := repository.QueryMany(ctx, r.db,
			"SELECT status, COUNT(*) FROM forms GROUP BY status", nil, scanBucket[string])
		if err != nil {
			return fmt.Errorf("count by status: %w", err)
		}
		for _, row := range rows {
			o.ByStatus[row.key] = row.count
			o.Total += row.count
		}
		return nil
	})

	g.Go(func() error {
		rows, err := repository.QueryMany(ctx, r.db,
			"SELECT risk_level, COUNT(*) FROM forms GROUP BY risk_level", nil, scanBucket[int])
		if err != nil {
			return fmt.Errorf("count by risk level: %w", err)
		}
		for _, row := range rows {
			o.ByRiskLevel[row.key] = row.count
		}
		return nil
	})

	g.Go(func() error {
		times, err := repository.QueryMany(ctx, r.db,
			"SELECT submitted_at FROM forms WHERE submitted_at >= $1",
			[]any{WindowStart(now, DefaultMonths)}, scanTime)
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}
		o.Monthly = BucketByMonth(times, now, DefaultMonths)
		return nil
	})

	g.Go(func() error {
		report, err := r.reporter.Report(ctx, revalidation.Criteria{}, &now)
		if err != nil {
			return fmt.Errorf("revalidation summary: %w", err)
		}
		o.Revalidations = report.Summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return o, nil
}
