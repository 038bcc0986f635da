// Package revalidations derives the revalidation report from approved forms
// and exports it as CSV or XLSX, streamed or archived to blob storage.
package revalidations

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/clock"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/formatting"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/storage"
)

// ExportPrefix is the storage key prefix of archived exports.
const ExportPrefix = "exports/"

// Source supplies the approved forms to classify.
type Source interface {
	Approved(ctx context.Context) ([]revalidation.ApprovedForm, error)
}

// System defines the public contract for revalidation operations.
// A nil asOf classifies against the current time.
type System interface {
	Handler() *Handler

	Report(ctx context.Context, criteria revalidation.Criteria, asOf *time.Time) (*Report, error)
	Export(ctx context.Context, w io.Writer, format Format, criteria revalidation.Criteria, asOf *time.Time) (*Report, error)
	Archive(ctx context.Context, format Format, criteria revalidation.Criteria, asOf *time.Time) (*Archive, error)
	Download(ctx context.Context, key string) (*storage.Blob, error)
}

type service struct {
	source  Source
	storage storage.System
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates the revalidation System.
func New(source Source, store storage.System, clk clock.Clock, logger *slog.Logger) System {
	return &service{
		source:  source,
		storage: store,
		clock:   clk,
		logger:  logger.With("system", "revalidations"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Report(ctx context.Context, criteria revalidation.Criteria, asOf *time.Time) (*Report, error) {
	forms, err := s.source.Approved(ctx)
	if err != nil {
		return nil, fmt.Errorf("load approved forms: %w", err)
	}

	now := s.clock.Now()
	if asOf != nil {
		now = *asOf
	}

	result := revalidation.Classify(forms, now)
	for _, w := range result.Warnings {
		s.logger.Warn("form skipped", "id", w.ID, "field", w.Field, "reason", w.Reason())
	}

	records, err := revalidation.Filter(result.Records, criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCriteria, err)
	}

	return newReport(result, records, criteria, now), nil
}

func (s *service) Export(
	ctx context.Context,
	w io.Writer,
	format Format,
	criteria revalidation.Criteria,
	asOf *time.Time,
) (*Report, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}

	report, err := s.Report(ctx, criteria, asOf)
	if err != nil {
		return nil, err
	}

	if err := Write(w, format, report.Records); err != nil {
		return nil, fmt.Errorf("write %s export: %w", format, err)
	}
	return report, nil
}

func (s *service) Archive(
	ctx context.Context,
	format Format,
	criteria revalidation.Criteria,
	asOf *time.Time,
) (*Archive, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	report, err := s.Export(ctx, &buf, format, criteria, asOf)
	if err != nil {
		return nil, err
	}

	archive := &Archive{
		Key:       ExportPrefix + uuid.NewString() + "/" + format.Filename(),
		Format:    format,
		Records:   len(report.Records),
		SizeBytes: int64(buf.Len()),
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.Upload(ctx, archive.Key, &buf, format.ContentType()); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	s.logger.Info(
		"export archived",
		"key", archive.Key,
		"records", archive.Records,
		"size", formatting.FormatBytes(archive.SizeBytes, 1),
	)
	return archive, nil
}

func (s *service) Download(ctx context.Context, key string) (*storage.Blob, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(key, ExportPrefix) {
		return nil, storage.ErrInvalidKey
	}

	blob, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download export: %w", err)
	}
	return blob, nil
}
