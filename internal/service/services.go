// Package service implements the farm data services: entity access with
// simulated latency, cross-entity side effects, analytics and exports.
package service

import (
	"log/slog"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"
)

// Services bundles every service the API exposes
type Services struct {
	Fields      *EntityService[model.Field]
	Crops       *EntityService[model.Crop]
	Tasks       *TaskService
	Resources   *ResourceService
	Equipment   *EquipmentService
	Maintenance *MaintenanceService
	Expenses    *ExpenseService
	Budgets     *EntityService[model.Budget]
	Income      *IncomeService

	Analytics AnalyticsService
	Reports   ReportService
	Exports   *ExportService
}

// New wires the services over repos
func New(repos *repository.Repositories, latency Latency, logger *slog.Logger, opts ...Option) *Services {
	reports := NewReportService(repos, latency, opts...)
	return &Services{
		Fields:      NewEntityService("field", repos.Fields, latency, logger),
		Crops:       NewEntityService("crop", repos.Crops, latency, logger),
		Tasks:       NewTaskService(repos.Tasks, latency, logger),
		Resources:   NewResourceService(repos.Resources, latency, logger),
		Equipment:   NewEquipmentService(repos.Equipment, repos.Maintenance, latency, logger),
		Maintenance: NewMaintenanceService(repos.Maintenance, repos.Equipment, latency, logger),
		Expenses:    NewExpenseService(repos.Expenses, latency, logger),
		Budgets:     NewEntityService("budget", repos.Budgets, latency, logger),
		Income:      NewIncomeService(repos.Income, latency, logger),
		Analytics:   NewAnalyticsService(repos, latency, opts...),
		Reports:     reports,
		Exports:     NewExportService(reports, logger, opts...),
	}
}
