package service

import (
	"context"
	"log/slog"
	"time"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"
)

// CRUD is the access contract the presentation layer relies on for every
// entity type
type CRUD[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, patch repository.Patch) (T, error)
	Delete(ctx context.Context, id string) error
}

// EntityService provides CRUD access to one entity collection with
// simulated latency
type EntityService[T any] struct {
	entity  string
	repo    repository.Repository[T]
	latency Latency
	logger  *slog.Logger
}

// NewEntityService creates a new entity service
func NewEntityService[T any](entity string, repo repository.Repository[T], latency Latency, logger *slog.Logger) *EntityService[T] {
	return &EntityService[T]{
		entity:  entity,
		repo:    repo,
		latency: latency,
		logger:  logger,
	}
}

// GetAll returns every record, newest first
func (s *EntityService[T]) GetAll(ctx context.Context) ([]T, error) {
	if err := wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// GetByID returns one record or a *repository.NotFoundError
func (s *EntityService[T]) GetByID(ctx context.Context, id string) (T, error) {
	if err := wait(ctx, s.latency.Get); err != nil {
		var zero T
		return zero, err
	}
	return s.repo.Get(ctx, id)
}

// Create stores item under a newly generated id. Any id or timestamps on
// item are discarded.
func (s *EntityService[T]) Create(ctx context.Context, item T) (T, error) {
	start := time.Now()
	if err := wait(ctx, s.latency.Create); err != nil {
		var zero T
		return zero, err
	}
	if e, ok := any(&item).(model.Entity); ok {
		*e.Meta() = model.Base{}
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.logError("create", "", err, start)
		return created, err
	}
	s.logger.Info("record created",
		"entity", s.entity,
		"id", idOf(&created),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return created, nil
}

// Update shallow-merges patch over the stored record
func (s *EntityService[T]) Update(ctx context.Context, id string, patch repository.Patch) (T, error) {
	start := time.Now()
	if err := wait(ctx, s.latency.Update); err != nil {
		var zero T
		return zero, err
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logError("update", id, err, start)
		return updated, err
	}
	s.logger.Info("record updated",
		"entity", s.entity,
		"id", id,
		"keys", len(patch),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return updated, nil
}

// Delete removes the record
func (s *EntityService[T]) Delete(ctx context.Context, id string) error {
	start := time.Now()
	if err := wait(ctx, s.latency.Delete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logError("delete", id, err, start)
		return err
	}
	s.logger.Info("record deleted",
		"entity", s.entity,
		"id", id,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Filter returns the records keep accepts, in listing order
func (s *EntityService[T]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	if err := wait(ctx, s.latency.Get); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *EntityService[T]) logError(op, id string, err error, start time.Time) {
	level := slog.LevelError
	if isClientError(err) {
		level = slog.LevelWarn
	}
	s.logger.Log(context.Background(), level, "operation failed",
		"entity", s.entity,
		"operation", op,
		"id", id,
		"error", err.Error(),
		"latency_ms", time.Since(start).Milliseconds(),
	)
}

func idOf(v any) string {
	if e, ok := v.(model.Entity); ok {
		return e.Meta().ID
	}
	return ""
}
