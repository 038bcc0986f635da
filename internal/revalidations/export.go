package revalidations

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/cnpj"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/revalidation"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	dateLayout = "2006-01-02"
	sheetName  = "Revalidations"
)

var columns = []string{
	"ID",
	"Company",
	"CNPJ",
	"Risk Level",
	"Responsible Technician",
	"Approved At",
	"Next Revalidation",
	"Days Until Expiration",
	"Status",
}

// ParseFormat accepts csv or xlsx, case-insensitively. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Filename() string {
	return "revalidations." + string(f)
}

// Write encodes records in the given format.
func Write(w io.Writer, format Format, records []revalidation.Record) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatXLSX:
		return writeXLSX(w, records)
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
}

func row(r revalidation.Record) []any {
	return []any{
		r.ID,
		r.CompanyName,
		cnpj.Format(r.TaxID),
		r.RiskLevel,
		r.ResponsibleTechnician,
		r.ApprovedAt.Format(dateLayout),
		r.NextRevalidation.Format(dateLayout),
		r.DaysUntilExpiration,
		r.Status.Label(),
	}
}

func writeCSV(w io.Writer, records []revalidation.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	fields := make([]string, len(columns))
	for _, r := range records {
		for i, v := range row(r) {
			switch v := v.(type) {
			case string:
				fields[i] = v
			case int:
				fields[i] = strconv.Itoa(v)
			case int64:
				fields[i] = strconv.FormatInt(v, 10)
			}
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, records []revalidation.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetColWidth(2, 2, 36); err != nil {
		return err
	}
	if err := sw.SetColWidth(3, len(columns), 20); err != nil {
		return err
	}

	titles := make([]any, len(columns))
	for i, c := range columns {
		titles[i] = c
	}
	if err := sw.SetRow("A1", titles, excelize.RowOpts{StyleID: header}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row(r)); err != nil {
			return fmt.Errorf("write row %d: %w", r.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	return f.Write(w)
}
