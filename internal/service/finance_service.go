package service

import (
	"context"
	"log/slog"
	"strings"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"
)

// ExpenseService manages expenses. Categories are stored normalized.
type ExpenseService struct {
	*EntityService[model.Expense]
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.Repository[model.Expense], latency Latency, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{EntityService: NewEntityService("expense", repo, latency, logger)}
}

// Create stores an expense with its category normalized
func (s *ExpenseService) Create(ctx context.Context, e model.Expense) (model.Expense, error) {
	e.Category = model.NormalizeExpenseCategory(e.Category)
	return s.EntityService.Create(ctx, e)
}

// Update shallow-merges patch, normalizing a category value if present
func (s *ExpenseService) Update(ctx context.Context, id string, patch repository.Patch) (model.Expense, error) {
	patch = normalizePatch(patch, "category", func(v string) string {
		return string(model.NormalizeExpenseCategory(model.ExpenseCategory(v)))
	})
	return s.EntityService.Update(ctx, id, patch)
}

// ByField returns the expenses charged to fieldID
func (s *ExpenseService) ByField(ctx context.Context, fieldID string) ([]model.Expense, error) {
	return s.Filter(ctx, func(e model.Expense) bool { return e.FieldID == fieldID })
}

// ByCategory returns the expenses in category
func (s *ExpenseService) ByCategory(ctx context.Context, category model.ExpenseCategory) ([]model.Expense, error) {
	want := model.NormalizeExpenseCategory(category)
	return s.Filter(ctx, func(e model.Expense) bool { return model.NormalizeExpenseCategory(e.Category) == want })
}

// ByDateRange returns the expenses dated within [start, end]
func (s *ExpenseService) ByDateRange(ctx context.Context, start, end model.Date) ([]model.Expense, error) {
	return s.Filter(ctx, func(e model.Expense) bool {
		return !e.Date.Before(start.Time) && !e.Date.After(end.Time)
	})
}

// IncomeService manages income records
type IncomeService struct {
	*EntityService[model.Income]
}

// NewIncomeService creates a new income service
func NewIncomeService(repo repository.Repository[model.Income], latency Latency, logger *slog.Logger) *IncomeService {
	return &IncomeService{EntityService: NewEntityService("income", repo, latency, logger)}
}

// ByCrop returns the income for cropType, matched case-insensitively
func (s *IncomeService) ByCrop(ctx context.Context, cropType string) ([]model.Income, error) {
	return s.Filter(ctx, func(i model.Income) bool { return strings.EqualFold(i.CropType, cropType) })
}

// ByField returns the income attributed to fieldID
func (s *IncomeService) ByField(ctx context.Context, fieldID string) ([]model.Income, error) {
	return s.Filter(ctx, func(i model.Income) bool { return i.FieldID == fieldID })
}
