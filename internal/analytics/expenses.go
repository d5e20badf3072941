// Package analytics holds the pure aggregation functions behind the
// dashboard reports. Functions never fetch data and never fail; missing
// or inconsistent input degrades to zero values.
package analytics

import (
	"math"
	"strings"

	"farm-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// SumByCategory totals expense amounts for each of categories. Every
// category is present in the result, with zero when nothing matches.
func SumByCategory(expenses []model.Expense, categories []model.ExpenseCategory) map[model.ExpenseCategory]decimal.Decimal {
	totals := make(map[model.ExpenseCategory]decimal.Decimal, len(categories))
	for _, c := range categories {
		totals[c] = decimal.Zero
	}
	for _, e := range expenses {
		category := model.NormalizeExpenseCategory(e.Category)
		if total, ok := totals[category]; ok {
			totals[category] = total.Add(e.Amount)
		}
	}
	return totals
}

// SumByField totals expense amounts per fieldId. Expenses without a
// field are grouped under the empty key.
func SumByField(expenses []model.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.FieldID] = totals[e.FieldID].Add(e.Amount)
	}
	return totals
}

// SumByCrop totals expense amounts per cropType, skipping expenses with
// no crop attribution.
func SumByCrop(expenses []model.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		crop := strings.TrimSpace(e.CropType)
		if crop == "" {
			continue
		}
		totals[crop] = totals[crop].Add(e.Amount)
	}
	return totals
}

// UnattributedExpenses totals the expenses that carry no cropType
func UnattributedExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if strings.TrimSpace(e.CropType) == "" {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalExpenses sums every expense amount
func TotalExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ExpensesInRange keeps expenses dated within [start, end], both inclusive
func ExpensesInRange(expenses []model.Expense, start, end model.Date) []model.Expense {
	out := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if inRange(e.Date, start, end) {
			out = append(out, e)
		}
	}
	return out
}

func inRange(d, start, end model.Date) bool {
	if d.IsZero() {
		return false
	}
	if !start.IsZero() && d.Before(start.Time) {
		return false
	}
	if !end.IsZero() && d.After(end.Time) {
		return false
	}
	return true
}

// percent returns part/whole*100 rounded to 2 decimals, or 0 when whole is 0
func percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return round(part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64(), 2)
}

func round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
