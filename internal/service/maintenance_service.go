package service

import (
	"context"
	"errors"
	"log/slog"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"
)

// MaintenanceService manages maintenance records
type MaintenanceService struct {
	*EntityService[model.MaintenanceRecord]
	equipment repository.Repository[model.Equipment]
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	repo repository.Repository[model.MaintenanceRecord],
	equipment repository.Repository[model.Equipment],
	latency Latency,
	logger *slog.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		EntityService: NewEntityService("maintenance record", repo, latency, logger),
		equipment:     equipment,
	}
}

// Create logs a completed maintenance record. A scheduled service that
// names its next service date also moves the machine's maintenance dates;
// failing to move them is logged and does not fail the create.
func (s *MaintenanceService) Create(ctx context.Context, record model.MaintenanceRecord) (model.MaintenanceRecord, error) {
	record.Status = model.MaintenanceCompleted
	created, err := s.EntityService.Create(ctx, record)
	if err != nil {
		return created, err
	}

	if created.Type != model.MaintenanceScheduled || created.NextServiceDate.IsZero() || created.EquipmentID == "" {
		return created, nil
	}
	_, err = s.equipment.Update(ctx, created.EquipmentID, repository.Patch{
		"lastMaintenanceDate": created.Date.String(),
		"nextMaintenanceDate": created.NextServiceDate.String(),
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("maintenance logged for unknown equipment",
			"record_id", created.ID,
			"equipment_id", created.EquipmentID,
		)
	case err != nil:
		s.logger.Error("failed to update equipment maintenance dates",
			"record_id", created.ID,
			"equipment_id", created.EquipmentID,
			"error", err.Error(),
		)
	}
	return created, nil
}

// ByEquipment returns the records of one machine
func (s *MaintenanceService) ByEquipment(ctx context.Context, equipmentID string) ([]model.MaintenanceRecord, error) {
	return s.Filter(ctx, func(r model.MaintenanceRecord) bool { return r.EquipmentID == equipmentID })
}
