package controller

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/model"
	"farm-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// mockReportService records the filter it was called with
type mockReportService struct {
	report *service.Report
	err    error
	got    *analytics.ReportFilter
}

func (m *mockReportService) BuildReport(_ context.Context, filter analytics.ReportFilter) (*service.Report, error) {
	m.got = &filter
	if m.err != nil {
		return nil, m.err
	}
	report := *m.report
	report.Filter = filter
	return &report, nil
}

// mockAnalyticsService is a mock implementation of AnalyticsService for testing
type mockAnalyticsService struct {
	breakdown *service.ExpenseBreakdown
	err       error
}

func (m *mockAnalyticsService) ExpenseBreakdown(context.Context) (*service.ExpenseBreakdown, error) {
	return m.breakdown, m.err
}

func (m *mockAnalyticsService) Profitability(context.Context) (*service.ProfitabilityResponse, error) {
	return &service.ProfitabilityResponse{}, m.err
}

func (m *mockAnalyticsService) BudgetUsage(context.Context) ([]analytics.BudgetStatus, error) {
	return nil, m.err
}

func (m *mockAnalyticsService) IncomeSummary(context.Context) (analytics.IncomeSummaryStats, error) {
	return analytics.IncomeSummaryStats{}, m.err
}

func (m *mockAnalyticsService) StockReport(context.Context) ([]service.ResourceStock, error) {
	return nil, m.err
}

func (m *mockAnalyticsService) TaskBoard(context.Context) ([]service.TaskView, error) {
	return nil, m.err
}

func (m *mockAnalyticsService) FleetOverview(context.Context) (*service.FleetOverview, error) {
	return &service.FleetOverview{}, m.err
}

func (m *mockAnalyticsService) EquipmentMaintenanceStatus(_ context.Context, id string) (*service.EquipmentStatus, error) {
	return &service.EquipmentStatus{EquipmentID: id}, m.err
}

func setupRouter(controller *AnalyticsController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	{
		controller.Register(v1.Group("/analytics"))
		v1.GET("/reports/summary", controller.GetReport)
	}
	return r
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetReport_Success(t *testing.T) {
	reports := &mockReportService{
		report: &service.Report{
			Period: service.PeriodInfo{
				StartDate: model.NewDate(2024, time.March, 20),
				EndDate:   model.NewDate(2024, time.June, 20),
			},
			Summary: analytics.ReportSummary{
				TotalExpenses: decimal.NewFromInt(29665),
				TotalFields:   4,
			},
		},
	}
	controller := NewAnalyticsController(&mockAnalyticsService{}, reports, discardLogger())
	router := setupRouter(controller)

	req, _ := http.NewRequest("GET", "/v1/reports/summary?season=Spring&year=2024&fieldId=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	want := analytics.ReportFilter{Season: analytics.SeasonSpring, Year: 2024, FieldID: "1"}
	if diff := cmp.Diff(want, *reports.got); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}

	var response struct {
		Period struct {
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
		} `json:"period"`
		Summary struct {
			TotalExpenses float64 `json:"totalExpenses"`
			TotalFields   int     `json:"totalFields"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Period.StartDate != "2024-03-20" || response.Period.EndDate != "2024-06-20" {
		t.Errorf("Expected period 2024-03-20..2024-06-20, got %+v", response.Period)
	}
	if response.Summary.TotalExpenses != 29665 {
		t.Errorf("Expected total expenses 29665, got %v", response.Summary.TotalExpenses)
	}
}

func TestGetReport_DateRange(t *testing.T) {
	reports := &mockReportService{report: &service.Report{}}
	controller := NewAnalyticsController(&mockAnalyticsService{}, reports, discardLogger())
	router := setupRouter(controller)

	req, _ := http.NewRequest("GET", "/v1/reports/summary?start_date=2024-04-01T00:00:00Z&end_date=2024-04-30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}
	want := analytics.ReportFilter{
		Season: analytics.SeasonAll,
		Year:   2024,
		Start:  model.NewDate(2024, time.April, 1),
		End:    model.NewDate(2024, time.April, 30),
	}
	if diff := cmp.Diff(want, *reports.got); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestGetReport_Validation(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantError string
	}{
		{
			name:      "unknown season",
			query:     "season=monsoon",
			wantError: "Invalid season",
		},
		{
			name:      "non numeric year",
			query:     "year=twenty",
			wantError: "Invalid year",
		},
		{
			name:      "start without end",
			query:     "start_date=2024-01-01",
			wantError: "Missing required parameter",
		},
		{
			name:      "malformed start",
			query:     "start_date=01/02/2024&end_date=2024-01-31",
			wantError: "Invalid start_date",
		},
		{
			name:      "malformed end",
			query:     "start_date=2024-01-01&end_date=soon",
			wantError: "Invalid end_date",
		},
		{
			name:      "reversed range",
			query:     "start_date=2024-02-01&end_date=2024-01-01",
			wantError: "Invalid date range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := &mockReportService{report: &service.Report{}}
			controller := NewAnalyticsController(&mockAnalyticsService{}, reports, discardLogger())
			router := setupRouter(controller)

			req, _ := http.NewRequest("GET", "/v1/reports/summary?"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
			}
			var errorResponse map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &errorResponse); err != nil {
				t.Fatalf("Failed to unmarshal error response: %v", err)
			}
			if errorResponse["error"] != tt.wantError {
				t.Errorf("Expected error %q, got %v", tt.wantError, errorResponse["error"])
			}
			if reports.got != nil {
				t.Error("report service should not be called for an invalid request")
			}
		})
	}
}

func TestGetReport_ServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "unexpected failure",
			err:        &serviceError{message: "database connection failed"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "client went away",
			err:        context.Canceled,
			wantStatus: StatusClientClosedRequest,
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewAnalyticsController(&mockAnalyticsService{}, &mockReportService{err: tt.err}, discardLogger())
			router := setupRouter(controller)

			req, _ := http.NewRequest("GET", "/v1/reports/summary", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status code %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	mock := &mockAnalyticsService{
		breakdown: &service.ExpenseBreakdown{Total: decimal.NewFromInt(33865)},
	}
	controller := NewAnalyticsController(mock, &mockReportService{}, discardLogger())
	router := setupRouter(controller)

	for _, path := range []string{
		"/v1/analytics/expenses",
		"/v1/analytics/profitability",
		"/v1/analytics/budgets",
		"/v1/analytics/income",
		"/v1/analytics/stock",
		"/v1/analytics/tasks",
		"/v1/analytics/equipment",
	} {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected status code %d, got %d", path, http.StatusOK, w.Code)
		}
	}

	mock.err = &serviceError{message: "storage offline"}
	req, _ := http.NewRequest("GET", "/v1/analytics/expenses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

// serviceError is a simple error type for testing
type serviceError struct {
	message string
}

func (e *serviceError) Error() string {
	return e.message
}
