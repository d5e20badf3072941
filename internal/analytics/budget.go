package analytics

import (
	"farm-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// BudgetStatus is a budget together with what has been spent against it
type BudgetStatus struct {
	Budget       model.Budget    `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	UsagePercent float64         `json:"usagePercent"`
	Overrun      bool            `json:"overrun"`
}

// BudgetSpent sums the expenses matching the budget's field and category
func BudgetSpent(budget model.Budget, expenses []model.Expense) decimal.Decimal {
	category := model.NormalizeExpenseCategory(budget.Category)
	spent := decimal.Zero
	for _, e := range expenses {
		if e.FieldID == budget.FieldID && model.NormalizeExpenseCategory(e.Category) == category {
			spent = spent.Add(e.Amount)
		}
	}
	return spent
}

// BudgetUsage returns spent/budgetAmount as a percentage. Values above
// 100 signal an overrun; a zero budget yields 0.
func BudgetUsage(budget model.Budget, expenses []model.Expense) float64 {
	return percent(BudgetSpent(budget, expenses), budget.BudgetAmount)
}

// BudgetStatuses evaluates every budget against expenses
func BudgetStatuses(budgets []model.Budget, expenses []model.Expense) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := BudgetSpent(b, expenses)
		usage := percent(spent, b.BudgetAmount)
		out = append(out, BudgetStatus{
			Budget:       b,
			Spent:        model.Money(spent),
			Remaining:    model.Money(b.BudgetAmount.Sub(spent)),
			UsagePercent: usage,
			Overrun:      spent.GreaterThan(b.BudgetAmount),
		})
	}
	return out
}
