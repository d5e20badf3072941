package analytics

import (
	"sort"
	"strings"
	"time"

	"farm-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// EquipmentSummaryStats is the fleet overview
type EquipmentSummaryStats struct {
	TotalEquipment  int             `json:"totalEquipment"`
	ActiveEquipment int             `json:"activeEquipment"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	AvgAge          float64         `json:"avgAge"` // years, one decimal
}

// EquipmentSummary counts the fleet and averages age in whole calendar
// years over machines with a purchase date.
func EquipmentSummary(equipment []model.Equipment, today time.Time) EquipmentSummaryStats {
	stats := EquipmentSummaryStats{TotalEquipment: len(equipment), TotalValue: decimal.Zero}

	var ageSum, dated int
	for _, eq := range equipment {
		if strings.EqualFold(eq.Status, model.EquipmentActive) {
			stats.ActiveEquipment++
		}
		stats.TotalValue = stats.TotalValue.Add(eq.CurrentValue)
		if !eq.PurchaseDate.IsZero() {
			ageSum += today.Year() - eq.PurchaseDate.Year()
			dated++
		}
	}
	if dated > 0 {
		stats.AvgAge = round(float64(ageSum)/float64(dated), 1)
	}
	stats.TotalValue = model.Money(stats.TotalValue)
	return stats
}

// MaintenanceSummaryStats is the service history overview
type MaintenanceSummaryStats struct {
	TotalRecords         int             `json:"totalRecords"`
	TotalCost            decimal.Decimal `json:"totalCost"`
	AvgCost              decimal.Decimal `json:"avgCost"`
	ScheduledMaintenance int             `json:"scheduledMaintenance"`
	Repairs              int             `json:"repairs"`
}

// MaintenanceSummary totals maintenance cost and counts records by type
func MaintenanceSummary(records []model.MaintenanceRecord) MaintenanceSummaryStats {
	stats := MaintenanceSummaryStats{TotalRecords: len(records), TotalCost: decimal.Zero, AvgCost: decimal.Zero}
	for _, r := range records {
		stats.TotalCost = stats.TotalCost.Add(r.Cost)
		switch r.Type {
		case model.MaintenanceScheduled:
			stats.ScheduledMaintenance++
		case model.MaintenanceRepair:
			stats.Repairs++
		}
	}
	if len(records) > 0 {
		stats.AvgCost = model.Money(stats.TotalCost.Div(decimal.NewFromInt(int64(len(records)))))
	}
	stats.TotalCost = model.Money(stats.TotalCost)
	return stats
}

// MaintenanceDue is a machine whose next service falls inside the horizon
type MaintenanceDue struct {
	model.Equipment
	DaysUntilMaintenance int `json:"daysUntilMaintenance"`
}

// UpcomingMaintenance lists equipment with a next maintenance date no more
// than horizonDays away, overdue machines included, soonest first.
func UpcomingMaintenance(equipment []model.Equipment, today time.Time, horizonDays int) []MaintenanceDue {
	out := make([]MaintenanceDue, 0)
	for _, eq := range equipment {
		if eq.NextMaintenanceDate.IsZero() {
			continue
		}
		days := eq.NextMaintenanceDate.DaysFrom(today)
		if days <= horizonDays {
			out = append(out, MaintenanceDue{Equipment: eq, DaysUntilMaintenance: days})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntilMaintenance < out[j].DaysUntilMaintenance
	})
	return out
}

// MaintenanceOverdue is a machine past its next maintenance date
type MaintenanceOverdue struct {
	model.Equipment
	DaysOverdue int `json:"daysOverdue"`
}

// OverdueMaintenance lists equipment past its next maintenance date, most
// overdue first.
func OverdueMaintenance(equipment []model.Equipment, today time.Time) []MaintenanceOverdue {
	out := make([]MaintenanceOverdue, 0)
	for _, eq := range equipment {
		if eq.NextMaintenanceDate.IsZero() {
			continue
		}
		if days := eq.NextMaintenanceDate.DaysFrom(today); days < 0 {
			out = append(out, MaintenanceOverdue{Equipment: eq, DaysOverdue: -days})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysOverdue > out[j].DaysOverdue
	})
	return out
}

// MaintenanceCostsByMonth totals maintenance cost per YYYY-MM
func MaintenanceCostsByMonth(records []model.MaintenanceRecord) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		key := r.Date.MonthKey()
		totals[key] = totals[key].Add(r.Cost)
	}
	return totals
}

// DistinctSorted returns the unique non-empty values in ascending order
func DistinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
