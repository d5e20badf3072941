package analytics

import (
	"strings"

	"farm-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// CropProfitability is the income statement of one crop
type CropProfitability struct {
	Income        decimal.Decimal `json:"income"`
	Expenses      decimal.Decimal `json:"expenses"`
	Profit        decimal.Decimal `json:"profit"`
	MarginPercent float64         `json:"marginPercent"`
	Profitable    bool            `json:"profitable"`
}

// IncomeByCrop totals income amounts per cropType, skipping records
// without a crop.
func IncomeByCrop(income []model.Income) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, i := range income {
		crop := strings.TrimSpace(i.CropType)
		if crop == "" {
			continue
		}
		totals[crop] = totals[crop].Add(i.Amount)
	}
	return totals
}

// ProfitabilityByCrop joins income and expenses on cropType. Expenses are
// attributed to a crop only through their own cropType; see
// UnattributedExpenses for the remainder.
func ProfitabilityByCrop(income []model.Income, expenses []model.Expense) map[string]CropProfitability {
	incomeByCrop := IncomeByCrop(income)
	expensesByCrop := SumByCrop(expenses)

	result := make(map[string]CropProfitability, len(incomeByCrop)+len(expensesByCrop))
	add := func(crop string) {
		if _, done := result[crop]; done {
			return
		}
		in := incomeByCrop[crop]
		out := expensesByCrop[crop]
		profit := in.Sub(out)

		margin := 0.0
		if in.IsPositive() {
			margin = percent(profit, in)
		}
		result[crop] = CropProfitability{
			Income:        model.Money(in),
			Expenses:      model.Money(out),
			Profit:        model.Money(profit),
			MarginPercent: margin,
			Profitable:    profit.IsPositive(),
		}
	}
	for crop := range incomeByCrop {
		add(crop)
	}
	for crop := range expensesByCrop {
		add(crop)
	}
	return result
}
