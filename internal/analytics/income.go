package analytics

import (
	"time"

	"farm-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// IncomeSummaryStats summarises sales
type IncomeSummaryStats struct {
	Total   decimal.Decimal `json:"total"`
	Monthly decimal.Decimal `json:"monthly"` // current calendar month
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

// IncomeSummary totals income, the share dated in today's month and the
// average sale.
func IncomeSummary(income []model.Income, today time.Time) IncomeSummaryStats {
	stats := IncomeSummaryStats{Total: decimal.Zero, Monthly: decimal.Zero, Average: decimal.Zero, Count: len(income)}
	for _, i := range income {
		stats.Total = stats.Total.Add(i.Amount)
		if !i.Date.IsZero() && i.Date.Year() == today.Year() && i.Date.Month() == today.Month() {
			stats.Monthly = stats.Monthly.Add(i.Amount)
		}
	}
	if len(income) > 0 {
		stats.Average = model.Money(stats.Total.Div(decimal.NewFromInt(int64(len(income)))))
	}
	stats.Total = model.Money(stats.Total)
	stats.Monthly = model.Money(stats.Monthly)
	return stats
}
