package controller

import (
	"log/slog"

	"farm-dashboard/internal/middleware"
	"farm-dashboard/internal/model"
	"farm-dashboard/internal/service"
	"farm-dashboard/internal/weather"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries everything the HTTP surface is built from
type RouterConfig struct {
	Services *service.Services
	Weather  *weather.Service
	Storage  Pinger
	Metrics  *middleware.Metrics
	Logger   *slog.Logger
}

// NewRouter wires every controller and the request middleware
func NewRouter(cfg RouterConfig) *gin.Engine {
	svc, logger := cfg.Services, cfg.Logger

	router := gin.New()
	router.Use(gin.Recovery(), middleware.StructuredLoggingMiddleware(logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", cfg.Metrics.PrometheusHandler())
	}

	router.GET("/health", NewHealthController(cfg.Storage, logger).Health)

	v1 := router.Group("/v1")
	if cfg.Metrics != nil {
		v1.GET("/metrics", cfg.Metrics.Handler)
	}

	NewEntityController[model.Field]("field", svc.Fields, logger).Register(v1.Group("/fields"))
	NewEntityController[model.Crop]("crop", svc.Crops, logger).Register(v1.Group("/crops"))
	NewTaskController(svc.Tasks, logger).Register(v1.Group("/tasks"))
	NewEntityController[model.Resource]("resource", svc.Resources, logger).
		WithListFilter(ResourceFilter(svc.Resources)).
		Register(v1.Group("/resources"))
	NewEquipmentController(svc.Equipment, svc.Maintenance, svc.Analytics, logger).Register(v1.Group("/equipment"))
	NewEntityController[model.MaintenanceRecord]("maintenance record", svc.Maintenance, logger).
		WithListFilter(MaintenanceFilter(svc.Maintenance)).
		Register(v1.Group("/maintenance"))
	NewEntityController[model.Expense]("expense", svc.Expenses, logger).
		WithListFilter(ExpenseFilter(svc.Expenses)).
		Register(v1.Group("/expenses"))
	NewEntityController[model.Budget]("budget", svc.Budgets, logger).Register(v1.Group("/budgets"))
	NewEntityController[model.Income]("income", svc.Income, logger).
		WithListFilter(IncomeFilter(svc.Income)).
		Register(v1.Group("/income"))

	analytics := NewAnalyticsController(svc.Analytics, svc.Reports, logger)
	analytics.Register(v1.Group("/analytics"))

	reports := v1.Group("/reports")
	reports.GET("/summary", analytics.GetReport)
	NewExportController(svc.Exports, logger).Register(reports)

	if cfg.Weather != nil {
		NewWeatherController(cfg.Weather, svc.Fields, logger).Register(v1.Group("/weather"))
	}

	return router
}
