package controller

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/model"
	"farm-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsController handles analytics and report HTTP requests
type AnalyticsController struct {
	analyticsService service.AnalyticsService
	reportService    service.ReportService
	logger           *slog.Logger
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(analyticsService service.AnalyticsService, reportService service.ReportService, logger *slog.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		reportService:    reportService,
		logger:           logger,
	}
}

// Register mounts the aggregate views on group
func (c *AnalyticsController) Register(group *gin.RouterGroup) {
	group.GET("/expenses", serve(c, "expense breakdown", c.analyticsService.ExpenseBreakdown))
	group.GET("/profitability", serve(c, "profitability", c.analyticsService.Profitability))
	group.GET("/budgets", serve(c, "budget usage", c.analyticsService.BudgetUsage))
	group.GET("/income", serve(c, "income summary", c.analyticsService.IncomeSummary))
	group.GET("/stock", serve(c, "stock report", c.analyticsService.StockReport))
	group.GET("/tasks", serve(c, "task board", c.analyticsService.TaskBoard))
	group.GET("/equipment", serve(c, "fleet overview", c.analyticsService.FleetOverview))
}

func serve[R any](c *AnalyticsController, operation string, fetch func(context.Context) (R, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startTime := time.Now()
		result, err := fetch(ctx.Request.Context())
		if err != nil {
			respondError(ctx, c.logger, startTime, operation, err)
			return
		}
		c.logger.Debug("analytics request completed",
			"operation", operation,
			"latency_ms", time.Since(startTime).Milliseconds(),
		)
		ctx.JSON(http.StatusOK, result)
	}
}

// GetReport handles GET /v1/reports/summary
// Query parameters:
//   - season (optional): all, spring, summer, fall or winter (default: all)
//   - year (optional): four-digit year (default: current year)
//   - start_date, end_date (optional): ISO 8601 window overriding the season; both or neither
//   - fieldId (optional): restrict to one field
//   - cropType (optional): restrict to one crop type
func (c *AnalyticsController) GetReport(ctx *gin.Context) {
	startTime := time.Now()

	filter, ok := parseReportFilter(ctx, c.logger)
	if !ok {
		return
	}

	c.logger.Info("processing report request",
		"season", filter.Season,
		"year", filter.Year,
		"field_id", filter.FieldID,
		"crop_type", filter.CropType,
	)

	report, err := c.reportService.BuildReport(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, c.logger, startTime, "build report", err,
			"season", filter.Season,
			"year", filter.Year,
		)
		return
	}

	c.logger.Info("report request completed",
		"season", report.Filter.Season,
		"year", report.Filter.Year,
		"expenses", len(report.Data.Expenses),
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
	ctx.JSON(http.StatusOK, report)
}

// parseReportFilter reads the report query parameters. On failure it has
// already written a 400 response.
func parseReportFilter(ctx *gin.Context, logger *slog.Logger) (analytics.ReportFilter, bool) {
	var filter analytics.ReportFilter

	season, err := analytics.ParseSeason(ctx.Query("season"))
	if err != nil {
		badRequest(ctx, logger, "Invalid season", "season must be one of: all, spring, summer, fall, winter",
			"season", ctx.Query("season"))
		return filter, false
	}
	filter.Season = season

	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1900 || year > 9999 {
			badRequest(ctx, logger, "Invalid year", "year must be a four-digit year", "year", yearStr)
			return filter, false
		}
		filter.Year = year
	}

	startStr, endStr := ctx.Query("start_date"), ctx.Query("end_date")
	if (startStr == "") != (endStr == "") {
		badRequest(ctx, logger, "Missing required parameter", "start_date and end_date must be given together")
		return filter, false
	}
	if startStr != "" {
		start, err := parseISO8601Date(startStr)
		if err != nil {
			badRequest(ctx, logger, "Invalid start_date", "start_date must be in ISO 8601 format (YYYY-MM-DD or RFC3339)",
				"start_date", startStr)
			return filter, false
		}
		end, err := parseISO8601Date(endStr)
		if err != nil {
			badRequest(ctx, logger, "Invalid end_date", "end_date must be in ISO 8601 format (YYYY-MM-DD or RFC3339)",
				"end_date", endStr)
			return filter, false
		}
		if end.Before(start) {
			badRequest(ctx, logger, "Invalid date range", "end_date must be after start_date",
				"start_date", startStr,
				"end_date", endStr)
			return filter, false
		}
		filter.Start, filter.End = model.DateOf(start), model.DateOf(end)
		if filter.Year == 0 {
			filter.Year = start.Year()
		}
	}

	filter.FieldID = ctx.Query("fieldId")
	filter.CropType = ctx.Query("cropType")
	return filter, true
}
