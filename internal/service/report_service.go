package service

import (
	"context"
	"time"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReportService builds seasonal farm reports
type ReportService interface {
	BuildReport(ctx context.Context, filter analytics.ReportFilter) (*Report, error)
}

// PeriodInfo contains date range information
type PeriodInfo struct {
	StartDate model.Date `json:"startDate"`
	EndDate   model.Date `json:"endDate"`
}

// Report is the filtered view of the farm over a reporting window
type Report struct {
	Filter               analytics.ReportFilter                    `json:"filter"`
	Period               PeriodInfo                                `json:"period"`
	Summary              analytics.ReportSummary                   `json:"summary"`
	ExpensesByCategory   map[model.ExpenseCategory]decimal.Decimal `json:"expensesByCategory"`
	ExpensesByField      []FieldTotal                              `json:"expensesByField"`
	TaskStatus           map[model.TaskStatus]int                  `json:"taskStatus"`
	Stock                analytics.StockOverviewStats              `json:"stock"`
	Profitability        map[string]analytics.CropProfitability    `json:"profitability"`
	UnattributedExpenses decimal.Decimal                           `json:"unattributedExpenses"`
	GeneratedAt          time.Time                                 `json:"generatedAt"`

	// Data is the filtered input the figures were computed from
	Data analytics.ReportData `json:"-"`
}

type reportService struct {
	repos   *repository.Repositories
	latency Latency
	now     func() time.Time
}

// NewReportService creates a new report service
func NewReportService(repos *repository.Repositories, latency Latency, opts ...Option) ReportService {
	o := buildOptions(opts)
	return &reportService{repos: repos, latency: latency, now: o.now}
}

// BuildReport loads every collection concurrently, narrows it with filter
// and computes the report figures. A zero filter year means the current year.
func (s *reportService) BuildReport(ctx context.Context, filter analytics.ReportFilter) (*Report, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return nil, err
	}

	now := s.now()
	if filter.Year == 0 {
		filter.Year = now.Year()
	}
	if filter.Season == "" {
		filter.Season = analytics.SeasonAll
	}

	var all analytics.ReportData
	g, gctx := errgroup.WithContext(ctx)
	listInto(gctx, g, s.repos.Fields, &all.Fields)
	listInto(gctx, g, s.repos.Tasks, &all.Tasks)
	listInto(gctx, g, s.repos.Expenses, &all.Expenses)
	listInto(gctx, g, s.repos.Resources, &all.Resources)
	listInto(gctx, g, s.repos.Income, &all.Income)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := analytics.FilterReport(all, filter)
	start, end := filter.Window()

	return &Report{
		Filter:               filter,
		Period:               PeriodInfo{StartDate: start, EndDate: end},
		Summary:              analytics.SummarizeReport(data),
		ExpensesByCategory:   analytics.SumByCategory(data.Expenses, model.ExpenseCategories),
		ExpensesByField:      fieldTotals(analytics.SumByField(data.Expenses), all.Fields),
		TaskStatus:           analytics.TaskStatusCounts(data.Tasks),
		Stock:                analytics.StockOverview(data.Resources),
		Profitability:        analytics.ProfitabilityByCrop(data.Income, data.Expenses),
		UnattributedExpenses: analytics.UnattributedExpenses(data.Expenses),
		GeneratedAt:          now.UTC(),
		Data:                 data,
	}, nil
}
