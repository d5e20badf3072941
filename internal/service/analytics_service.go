package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService defines the interface for dashboard analytics
type AnalyticsService interface {
	ExpenseBreakdown(ctx context.Context) (*ExpenseBreakdown, error)
	Profitability(ctx context.Context) (*ProfitabilityResponse, error)
	BudgetUsage(ctx context.Context) ([]analytics.BudgetStatus, error)
	IncomeSummary(ctx context.Context) (analytics.IncomeSummaryStats, error)
	StockReport(ctx context.Context) ([]ResourceStock, error)
	TaskBoard(ctx context.Context) ([]TaskView, error)
	FleetOverview(ctx context.Context) (*FleetOverview, error)
	EquipmentMaintenanceStatus(ctx context.Context, equipmentID string) (*EquipmentStatus, error)
}

// ExpenseBreakdown totals expenses along every reporting dimension
type ExpenseBreakdown struct {
	Total        decimal.Decimal                           `json:"total"`
	ByCategory   map[model.ExpenseCategory]decimal.Decimal `json:"byCategory"`
	ByField      []FieldTotal                              `json:"byField"`
	ByCrop       map[string]decimal.Decimal                `json:"byCrop"`
	Unattributed decimal.Decimal                           `json:"unattributed"`
}

// FieldTotal is an amount attributed to one field
type FieldTotal struct {
	FieldID   string          `json:"fieldId"`
	FieldName string          `json:"fieldName"`
	Total     decimal.Decimal `json:"total"`
}

// ProfitabilityResponse is the per-crop profit picture with farm totals
type ProfitabilityResponse struct {
	Crops         map[string]analytics.CropProfitability `json:"crops"`
	TotalIncome   decimal.Decimal                        `json:"totalIncome"`
	TotalExpenses decimal.Decimal                        `json:"totalExpenses"`
	NetProfit     decimal.Decimal                        `json:"netProfit"`
	Unattributed  decimal.Decimal                        `json:"unattributedExpenses"`
}

// ResourceStock is a resource annotated with its stock status
type ResourceStock struct {
	model.Resource
	Stock analytics.StockReport `json:"stock"`
}

// TaskView is a task with its field reference resolved
type TaskView struct {
	model.Task
	FieldName string `json:"fieldName"`
}

// FleetOverview gathers every equipment and maintenance statistic
type FleetOverview struct {
	Equipment     analytics.EquipmentSummaryStats   `json:"equipment"`
	Maintenance   analytics.MaintenanceSummaryStats `json:"maintenance"`
	Upcoming      []analytics.MaintenanceDue        `json:"upcoming"`
	Overdue       []analytics.MaintenanceOverdue    `json:"overdue"`
	CostsByMonth  map[string]decimal.Decimal        `json:"costsByMonth"`
	Types         []string                          `json:"types"`
	Manufacturers []string                          `json:"manufacturers"`
}

// EquipmentStatus is the maintenance state of a single machine
type EquipmentStatus struct {
	EquipmentID string                      `json:"equipmentId"`
	Name        string                      `json:"name"`
	Maintenance analytics.MaintenanceReport `json:"maintenance"`
	Records     int                         `json:"records"`
	TotalCost   decimal.Decimal             `json:"totalCost"`
}

// analyticsService implements AnalyticsService
type analyticsService struct {
	repos   *repository.Repositories
	latency Latency
	now     func() time.Time
	horizon int
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repos *repository.Repositories, latency Latency, opts ...Option) AnalyticsService {
	o := buildOptions(opts)
	return &analyticsService{
		repos:   repos,
		latency: latency,
		now:     o.now,
		horizon: o.maintenanceHorizon,
	}
}

// ExpenseBreakdown totals expenses by category, field and crop
func (s *analyticsService) ExpenseBreakdown(ctx context.Context) (*ExpenseBreakdown, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return nil, err
	}

	var (
		expenses []model.Expense
		fields   []model.Field
	)
	g, gctx := errgroup.WithContext(ctx)
	listInto(gctx, g, s.repos.Expenses, &expenses)
	listInto(gctx, g, s.repos.Fields, &fields)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ExpenseBreakdown{
		Total:        analytics.TotalExpenses(expenses),
		ByCategory:   analytics.SumByCategory(expenses, model.ExpenseCategories),
		ByField:      fieldTotals(analytics.SumByField(expenses), fields),
		ByCrop:       analytics.SumByCrop(expenses),
		Unattributed: analytics.UnattributedExpenses(expenses),
	}, nil
}

// Profitability compares income and expenses per crop
func (s *analyticsService) Profitability(ctx context.Context) (*ProfitabilityResponse, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return nil, err
	}

	var (
		expenses []model.Expense
		income   []model.Income
	)
	g, gctx := errgroup.WithContext(ctx)
	listInto(gctx, g, s.repos.Expenses, &expenses)
	listInto(gctx, g, s.repos.Income, &income)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	for _, i := range income {
		totalIncome = totalIncome.Add(i.Amount)
	}
	totalExpenses := analytics.TotalExpenses(expenses)

	return &ProfitabilityResponse{
		Crops:         analytics.ProfitabilityByCrop(income, expenses),
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetProfit:     totalIncome.Sub(totalExpenses),
		Unattributed:  analytics.UnattributedExpenses(expenses),
	}, nil
}

// BudgetUsage evaluates every budget against recorded spending
func (s *analyticsService) BudgetUsage(ctx context.Context) ([]analytics.BudgetStatus, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return nil, err
	}

	var (
		budgets  []model.Budget
		expenses []model.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	listInto(gctx, g, s.repos.Budgets, &budgets)
	listInto(gctx, g, s.repos.Expenses, &expenses)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return analytics.BudgetStatuses(budgets, expenses), nil
}

// IncomeSummary totals income overall and for the current month
func (s *analyticsService) IncomeSummary(ctx context.Context) (analytics.IncomeSummaryStats, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return analytics.IncomeSummaryStats{}, err
	}
	income, err := s.repos.Income.List(ctx)
	if err != nil {
		return analytics.IncomeSummaryStats{}, err
	}
	return analytics.IncomeSummary(income, s.now()), nil
}

// StockReport annotates every resource with its stock status
func (s *analyticsService) StockReport(ctx context.Context) ([]ResourceStock, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return nil, err
	}
	resources, err := s.repos.Resources.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ResourceStock, 0, len(resources))
	for _, r := range resources {
		out = append(out, ResourceStock{
			Resource: r,
			Stock:    analytics.StockStatus(r.Quantity, r.MinimumStock),
		})
	}
	return out, nil
}

// TaskBoard lists tasks with the names of the fields they belong to
func (s *analyticsService) TaskBoard(ctx context.Context) ([]TaskView, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return nil, err
	}

	var (
		tasks  []model.Task
		fields []model.Field
	)
	g, gctx := errgroup.WithContext(ctx)
	listInto(gctx, g, s.repos.Tasks, &tasks)
	listInto(gctx, g, s.repos.Fields, &fields)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskView{Task: t, FieldName: analytics.ResolveFieldName(t.FieldID, fields)})
	}
	return out, nil
}

// FleetOverview summarizes the fleet and its maintenance history
func (s *analyticsService) FleetOverview(ctx context.Context) (*FleetOverview, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return nil, err
	}

	var (
		equipment []model.Equipment
		records   []model.MaintenanceRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	listInto(gctx, g, s.repos.Equipment, &equipment)
	listInto(gctx, g, s.repos.Maintenance, &records)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	types := make([]string, 0, len(equipment))
	manufacturers := make([]string, 0, len(equipment))
	for _, e := range equipment {
		types = append(types, e.Type)
		manufacturers = append(manufacturers, e.Manufacturer)
	}

	today := s.now()
	return &FleetOverview{
		Equipment:     analytics.EquipmentSummary(equipment, today),
		Maintenance:   analytics.MaintenanceSummary(records),
		Upcoming:      analytics.UpcomingMaintenance(equipment, today, s.horizon),
		Overdue:       analytics.OverdueMaintenance(equipment, today),
		CostsByMonth:  analytics.MaintenanceCostsByMonth(records),
		Types:         analytics.DistinctSorted(types),
		Manufacturers: analytics.DistinctSorted(manufacturers),
	}, nil
}

// EquipmentMaintenanceStatus reports how soon one machine is due for service
func (s *analyticsService) EquipmentMaintenanceStatus(ctx context.Context, equipmentID string) (*EquipmentStatus, error) {
	if err := wait(ctx, s.latency.Analytics); err != nil {
		return nil, err
	}

	var (
		eq      model.Equipment
		records []model.MaintenanceRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		eq, err = s.repos.Equipment.Get(gctx, equipmentID)
		return err
	})
	listInto(gctx, g, s.repos.Maintenance, &records)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	status := &EquipmentStatus{
		EquipmentID: eq.ID,
		Name:        eq.Name,
		Maintenance: analytics.MaintenanceStatus(eq.NextMaintenanceDate, s.now()),
		TotalCost:   decimal.Zero,
	}
	for _, r := range records {
		if r.EquipmentID == eq.ID {
			status.Records++
			status.TotalCost = status.TotalCost.Add(r.Cost)
		}
	}
	return status, nil
}

// fieldTotals resolves the field names of per-field totals and orders them
// by amount, largest first
func fieldTotals(totals map[string]decimal.Decimal, fields []model.Field) []FieldTotal {
	out := make([]FieldTotal, 0, len(totals))
	for id, total := range totals {
		name := analytics.UnknownField
		if id != "" {
			name = analytics.ResolveFieldName(id, fields)
		}
		out = append(out, FieldTotal{FieldID: id, FieldName: name, Total: total})
	}
	slices.SortFunc(out, func(a, b FieldTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.FieldID, b.FieldID)
	})
	return out
}

func listInto[T any](ctx context.Context, g *errgroup.Group, repo repository.Repository[T], dst *[]T) {
	g.Go(func() error {
		items, err := repo.List(ctx)
		if err != nil {
			return err
		}
		*dst = items
		return nil
	})
}
