package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"
)

// EquipmentService manages the machinery fleet
type EquipmentService struct {
	*EntityService[model.Equipment]
	maintenance repository.Repository[model.MaintenanceRecord]
}

// NewEquipmentService creates a new equipment service
func NewEquipmentService(
	repo repository.Repository[model.Equipment],
	maintenance repository.Repository[model.MaintenanceRecord],
	latency Latency,
	logger *slog.Logger,
) *EquipmentService {
	return &EquipmentService{
		EntityService: NewEntityService("equipment", repo, latency, logger),
		maintenance:   maintenance,
	}
}

// Create registers a machine. New machines start Active with no operating
// hours and no maintenance history.
func (s *EquipmentService) Create(ctx context.Context, eq model.Equipment) (model.Equipment, error) {
	eq.Status = model.EquipmentActive
	eq.OperatingHours = 0
	eq.LastMaintenanceDate = model.Date{}
	eq.NextMaintenanceDate = model.Date{}
	return s.EntityService.Create(ctx, eq)
}

// Delete removes the machine together with its maintenance records. Once
// the machine is gone the cascade runs to completion even if ctx is
// canceled.
func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	if err := s.EntityService.Delete(ctx, id); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	records, err := s.maintenance.List(ctx)
	if err != nil {
		return fmt.Errorf("list maintenance for equipment %s: %w", id, err)
	}
	removed := 0
	for _, r := range records {
		if r.EquipmentID != id {
			continue
		}
		if err := s.maintenance.Delete(ctx, r.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("delete maintenance record %s: %w", r.ID, err)
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("maintenance records removed with equipment",
			"equipment_id", id,
			"count", removed,
		)
	}
	return nil
}
