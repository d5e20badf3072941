package controller

import (
	"log/slog"
	"net/http"
	"time"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// EquipmentController adds maintenance views to the equipment collection
type EquipmentController struct {
	*EntityController[model.Equipment]
	maintenance *service.MaintenanceService
	analytics   service.AnalyticsService
}

// NewEquipmentController creates a new equipment controller
func NewEquipmentController(
	equipment *service.EquipmentService,
	maintenance *service.MaintenanceService,
	analytics service.AnalyticsService,
	logger *slog.Logger,
) *EquipmentController {
	return &EquipmentController{
		EntityController: NewEntityController[model.Equipment]("equipment", equipment, logger),
		maintenance:      maintenance,
		analytics:        analytics,
	}
}

// Register mounts CRUD plus the maintenance views
func (c *EquipmentController) Register(group *gin.RouterGroup) {
	c.EntityController.Register(group)
	group.GET("/:id/maintenance", c.MaintenanceHistory)
	group.GET("/:id/maintenance-status", c.MaintenanceStatus)
}

// MaintenanceHistory handles GET /v1/equipment/:id/maintenance
func (c *EquipmentController) MaintenanceHistory(ctx *gin.Context) {
	startTime := time.Now()
	id := ctx.Param("id")

	if _, err := c.service.GetByID(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.logger, startTime, "maintenance history", err, "equipment_id", id)
		return
	}
	records, err := c.maintenance.ByEquipment(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, startTime, "maintenance history", err, "equipment_id", id)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// MaintenanceStatus handles GET /v1/equipment/:id/maintenance-status
func (c *EquipmentController) MaintenanceStatus(ctx *gin.Context) {
	startTime := time.Now()
	id := ctx.Param("id")

	status, err := c.analytics.EquipmentMaintenanceStatus(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, startTime, "maintenance status", err, "equipment_id", id)
		return
	}
	ctx.JSON(http.StatusOK, status)
}
