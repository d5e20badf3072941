package controller

import (
	"context"
	"errors"
	"strconv"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskFilter supports ?fieldId= and ?status=
func TaskFilter(svc *service.TaskService) ListFilter[model.Task] {
	return func(ctx *gin.Context) (func(context.Context) ([]model.Task, error), error) {
		if fieldID := ctx.Query("fieldId"); fieldID != "" {
			return func(c context.Context) ([]model.Task, error) { return svc.ByField(c, fieldID) }, nil
		}
		if status := ctx.Query("status"); status != "" {
			return func(c context.Context) ([]model.Task, error) { return svc.ByStatus(c, model.TaskStatus(status)) }, nil
		}
		return nil, nil
	}
}

// ResourceFilter supports ?lowStock=true
func ResourceFilter(svc *service.ResourceService) ListFilter[model.Resource] {
	return func(ctx *gin.Context) (func(context.Context) ([]model.Resource, error), error) {
		raw := ctx.Query("lowStock")
		if raw == "" {
			return nil, nil
		}
		low, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.New("lowStock must be true or false")
		}
		if !low {
			return nil, nil
		}
		return svc.LowStock, nil
	}
}

// MaintenanceFilter supports ?equipmentId=
func MaintenanceFilter(svc *service.MaintenanceService) ListFilter[model.MaintenanceRecord] {
	return func(ctx *gin.Context) (func(context.Context) ([]model.MaintenanceRecord, error), error) {
		id := ctx.Query("equipmentId")
		if id == "" {
			return nil, nil
		}
		return func(c context.Context) ([]model.MaintenanceRecord, error) { return svc.ByEquipment(c, id) }, nil
	}
}

// ExpenseFilter supports ?fieldId=, ?category= and ?start_date=&end_date=
func ExpenseFilter(svc *service.ExpenseService) ListFilter[model.Expense] {
	return func(ctx *gin.Context) (func(context.Context) ([]model.Expense, error), error) {
		if fieldID := ctx.Query("fieldId"); fieldID != "" {
			return func(c context.Context) ([]model.Expense, error) { return svc.ByField(c, fieldID) }, nil
		}
		if category := ctx.Query("category"); category != "" {
			return func(c context.Context) ([]model.Expense, error) {
				return svc.ByCategory(c, model.ExpenseCategory(category))
			}, nil
		}

		startStr, endStr := ctx.Query("start_date"), ctx.Query("end_date")
		if startStr == "" && endStr == "" {
			return nil, nil
		}
		if startStr == "" || endStr == "" {
			return nil, errors.New("start_date and end_date must be given together")
		}
		start, err := parseISO8601Date(startStr)
		if err != nil {
			return nil, err
		}
		end, err := parseISO8601Date(endStr)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, errors.New("end_date must be after start_date")
		}
		return func(c context.Context) ([]model.Expense, error) {
			return svc.ByDateRange(c, model.DateOf(start), model.DateOf(end))
		}, nil
	}
}

// IncomeFilter supports ?cropType= and ?fieldId=
func IncomeFilter(svc *service.IncomeService) ListFilter[model.Income] {
	return func(ctx *gin.Context) (func(context.Context) ([]model.Income, error), error) {
		if crop := ctx.Query("cropType"); crop != "" {
			return func(c context.Context) ([]model.Income, error) { return svc.ByCrop(c, crop) }, nil
		}
		if fieldID := ctx.Query("fieldId"); fieldID != "" {
			return func(c context.Context) ([]model.Income, error) { return svc.ByField(c, fieldID) }, nil
		}
		return nil, nil
	}
}
