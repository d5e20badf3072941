package analytics

import (
	"fmt"
	"time"

	"farm-dashboard/internal/model"
)

// StockLevel classifies inventory health
type StockLevel string

const (
	StockCritical StockLevel = "critical"
	StockLow      StockLevel = "low"
	StockGood     StockLevel = "good"
)

// StockReport is the derived stock status of one resource
type StockReport struct {
	Status StockLevel `json:"status"`
	Ratio  float64    `json:"ratio"`
}

// StockStatus compares quantity against minimumStock: critical at or below
// the minimum, low up to 1.5 times the minimum, good above. A resource
// without a positive minimum has no threshold and is always good.
func StockStatus(quantity, minimumStock float64) StockReport {
	if minimumStock <= 0 {
		return StockReport{Status: StockGood}
	}

	ratio := quantity / minimumStock
	report := StockReport{Ratio: round(ratio, 2)}
	switch {
	case ratio <= 1:
		report.Status = StockCritical
	case ratio <= 1.5:
		report.Status = StockLow
	default:
		report.Status = StockGood
	}
	return report
}

// MaintenanceState classifies how urgently equipment needs service
type MaintenanceState string

const (
	MaintenanceStateNone      MaintenanceState = "none"
	MaintenanceStateOverdue   MaintenanceState = "overdue"
	MaintenanceStateDue       MaintenanceState = "due"
	MaintenanceStateUpcoming  MaintenanceState = "upcoming"
	MaintenanceStateScheduled MaintenanceState = "scheduled"
)

const (
	dueWindowDays      = 7
	upcomingWindowDays = 30
)

// MaintenanceReport is the derived maintenance status of one machine
type MaintenanceReport struct {
	Status    MaintenanceState `json:"status"`
	DaysUntil int              `json:"daysUntil"`
	DaysText  string           `json:"daysText"`
}

// MaintenanceStatus classifies next relative to today's calendar day
func MaintenanceStatus(next model.Date, today time.Time) MaintenanceReport {
	if next.IsZero() {
		return MaintenanceReport{Status: MaintenanceStateNone, DaysText: "No Schedule"}
	}

	days := next.DaysFrom(today)
	report := MaintenanceReport{DaysUntil: days}
	switch {
	case days < 0:
		report.Status = MaintenanceStateOverdue
		if days == -1 {
			report.DaysText = "1 day overdue"
		} else {
			report.DaysText = fmt.Sprintf("%d days overdue", -days)
		}
		return report
	case days <= dueWindowDays:
		report.Status = MaintenanceStateDue
	case days <= upcomingWindowDays:
		report.Status = MaintenanceStateUpcoming
	default:
		report.Status = MaintenanceStateScheduled
	}

	switch days {
	case 0:
		report.DaysText = "Due today"
	case 1:
		report.DaysText = "Due in 1 day"
	default:
		report.DaysText = fmt.Sprintf("Due in %d days", days)
	}
	return report
}
