package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/blob"
	"farm-dashboard/internal/export"
)

const archivePrefix = "reports/"

// ExportService renders reports to files and archives them in blob storage
type ExportService struct {
	reports ReportService
	store   blob.Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewExportService creates a new export service. Without WithBlobStore
// archives are kept in memory.
func NewExportService(reports ReportService, logger *slog.Logger, opts ...Option) *ExportService {
	o := buildOptions(opts)
	store := o.store
	if store == nil {
		store = blob.NewMemory()
	}
	return &ExportService{
		reports: reports,
		store:   store,
		logger:  logger,
		now:     o.now,
	}
}

// Render builds the report for filter and writes it to w in format. It
// returns the download filename.
func (s *ExportService) Render(ctx context.Context, filter analytics.ReportFilter, format export.Format, w io.Writer) (string, error) {
	report, err := s.reports.BuildReport(ctx, filter)
	if err != nil {
		return "", err
	}
	if err := writeReport(w, report, format); err != nil {
		return "", fmt.Errorf("render %s report: %w", format, err)
	}
	return export.Filename(report.Filter.Season, report.Filter.Year, format), nil
}

// Archive renders the report and stores it under reports/<year>/
func (s *ExportService) Archive(ctx context.Context, filter analytics.ReportFilter, format export.Format) (blob.Info, error) {
	report, err := s.reports.BuildReport(ctx, filter)
	if err != nil {
		return blob.Info{}, err
	}

	var buf bytes.Buffer
	if err := writeReport(&buf, report, format); err != nil {
		return blob.Info{}, fmt.Errorf("render %s report: %w", format, err)
	}

	filename := export.Filename(report.Filter.Season, report.Filter.Year, format)
	stamp := s.now().UTC().Format("20060102T150405")
	key := path.Join(
		archivePrefix,
		strconv.Itoa(report.Filter.Year),
		strings.TrimSuffix(filename, "."+string(format))+"-"+stamp+"."+string(format),
	)

	info, err := s.store.Put(ctx, key, &buf, format.ContentType(), map[string]string{
		"season":   string(report.Filter.Season),
		"year":     strconv.Itoa(report.Filter.Year),
		"filename": filename,
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive report: %w", err)
	}
	s.logger.Info("report archived",
		"key", info.Key,
		"format", string(format),
		"size", info.Size,
	)
	return info, nil
}

// Archives lists every archived report, ordered by key
func (s *ExportService) Archives(ctx context.Context) ([]blob.Info, error) {
	return s.store.List(ctx, archivePrefix)
}

// Open returns an archived report. Keys outside the archive are not found.
func (s *ExportService) Open(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	key = strings.TrimPrefix(key, "/")
	if !strings.HasPrefix(key, archivePrefix) || strings.Contains(key, "..") {
		return blob.Info{}, nil, fmt.Errorf("%w: %s", blob.ErrNotFound, key)
	}
	return s.store.Get(ctx, key)
}

func writeReport(w io.Writer, report *Report, format export.Format) error {
	names := analytics.FieldNames(report.Data.Fields)
	switch format {
	case export.FormatXLSX:
		return export.WriteXLSX(w, workbook(report, names))
	default:
		return export.WriteExpensesCSV(w, report.Data.Expenses, names)
	}
}

func workbook(report *Report, names map[string]string) export.Workbook {
	sum := report.Summary
	return export.Workbook{
		Title: fmt.Sprintf("Agricultural report, %s %d (%s to %s)",
			report.Filter.Season, report.Filter.Year, report.Period.StartDate, report.Period.EndDate),
		Summary: []export.SummaryLine{
			{Label: "Total expenses", Value: sum.TotalExpenses.InexactFloat64()},
			{Label: "Total income", Value: sum.TotalIncome.InexactFloat64()},
			{Label: "Average expense per field", Value: sum.AvgExpensePerField.InexactFloat64()},
			{Label: "Unattributed expenses", Value: report.UnattributedExpenses.InexactFloat64()},
			{Label: "Fields", Value: sum.TotalFields},
			{Label: "Tasks", Value: sum.TotalTasks},
			{Label: "Completed tasks", Value: sum.CompletedTasks},
			{Label: "Low stock resources", Value: report.Stock.LowStock},
		},
		Expenses:      report.Data.Expenses,
		FieldNames:    names,
		Profitability: report.Profitability,
	}
}
