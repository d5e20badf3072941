package service

import (
	"context"
	"log/slog"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"
)

// ResourceService manages inventory
type ResourceService struct {
	*EntityService[model.Resource]
}

// NewResourceService creates a new resource service
func NewResourceService(repo repository.Repository[model.Resource], latency Latency, logger *slog.Logger) *ResourceService {
	return &ResourceService{EntityService: NewEntityService("resource", repo, latency, logger)}
}

// LowStock returns the resources whose stock status is critical or low
func (s *ResourceService) LowStock(ctx context.Context) ([]model.Resource, error) {
	return s.Filter(ctx, func(r model.Resource) bool {
		return analytics.StockStatus(r.Quantity, r.MinimumStock).Status != analytics.StockGood
	})
}
