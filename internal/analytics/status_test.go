package analytics

import (
	"testing"
	"time"

	"farm-dashboard/internal/model"
)

// TestStockStatus tests the stock classification thresholds
func TestStockStatus(t *testing.T) {
	tests := []struct {
		name           string
		quantity       float64
		minimumStock   float64
		expectedStatus StockLevel
		expectedRatio  float64
		description    string
	}{
		{
			name:           "critical - half of minimum",
			quantity:       5,
			minimumStock:   10,
			expectedStatus: StockCritical,
			expectedRatio:  0.5,
			description:    "Ratio 0.5 is at or below 1",
		},
		{
			name:           "critical - exactly minimum",
			quantity:       10,
			minimumStock:   10,
			expectedStatus: StockCritical,
			expectedRatio:  1,
			description:    "Ratio 1 is still critical",
		},
		{
			name:           "low - 1.2 times minimum",
			quantity:       12,
			minimumStock:   10,
			expectedStatus: StockLow,
			expectedRatio:  1.2,
			description:    "Ratio 1.2 is within the low band",
		},
		{
			name:           "low - exactly 1.5 times minimum",
			quantity:       15,
			minimumStock:   10,
			expectedStatus: StockLow,
			expectedRatio:  1.5,
			description:    "Upper bound of the low band is inclusive",
		},
		{
			name:           "good - double the minimum",
			quantity:       20,
			minimumStock:   10,
			expectedStatus: StockGood,
			expectedRatio:  2,
			description:    "Ratio above 1.5 is good",
		},
		{
			name:           "no minimum configured",
			quantity:       0,
			minimumStock:   0,
			expectedStatus: StockGood,
			expectedRatio:  0,
			description:    "Zero denominator yields ratio 0 and no shortage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StockStatus(tt.quantity, tt.minimumStock)
			if got.Status != tt.expectedStatus {
				t.Errorf("%s: StockStatus(%v, %v).Status = %q, want %q",
					tt.description, tt.quantity, tt.minimumStock, got.Status, tt.expectedStatus)
			}
			if got.Ratio != tt.expectedRatio {
				t.Errorf("%s: ratio = %v, want %v", tt.description, got.Ratio, tt.expectedRatio)
			}
		})
	}
}

// TestMaintenanceStatus tests the maintenance urgency classification
func TestMaintenanceStatus(t *testing.T) {
	today := time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)
	base := model.DateOf(today)

	tests := []struct {
		name           string
		next           model.Date
		expectedStatus MaintenanceState
		expectedText   string
	}{
		{"ten days in the past", base.AddDays(-10), MaintenanceStateOverdue, "10 days overdue"},
		{"yesterday", base.AddDays(-1), MaintenanceStateOverdue, "1 day overdue"},
		{"today", base, MaintenanceStateDue, "Due today"},
		{"tomorrow", base.AddDays(1), MaintenanceStateDue, "Due in 1 day"},
		{"three days ahead", base.AddDays(3), MaintenanceStateDue, "Due in 3 days"},
		{"seven days ahead", base.AddDays(7), MaintenanceStateDue, "Due in 7 days"},
		{"eight days ahead", base.AddDays(8), MaintenanceStateUpcoming, "Due in 8 days"},
		{"twenty days ahead", base.AddDays(20), MaintenanceStateUpcoming, "Due in 20 days"},
		{"thirty days ahead", base.AddDays(30), MaintenanceStateUpcoming, "Due in 30 days"},
		{"sixty days ahead", base.AddDays(60), MaintenanceStateScheduled, "Due in 60 days"},
		{"unset", model.Date{}, MaintenanceStateNone, "No Schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaintenanceStatus(tt.next, today)
			if got.Status != tt.expectedStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.expectedStatus)
			}
			if got.DaysText != tt.expectedText {
				t.Errorf("daysText = %q, want %q", got.DaysText, tt.expectedText)
			}
		})
	}
}
