package service

import (
	"context"
	"log/slog"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/repository"
)

// TaskService manages farm tasks. Status spellings are normalized on every
// write so stored tasks only ever carry the canonical values.
type TaskService struct {
	*EntityService[model.Task]
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.Repository[model.Task], latency Latency, logger *slog.Logger) *TaskService {
	return &TaskService{EntityService: NewEntityService("task", repo, latency, logger)}
}

// Create stores a task, defaulting its status to pending
func (s *TaskService) Create(ctx context.Context, task model.Task) (model.Task, error) {
	task.Status = model.NormalizeTaskStatus(task.Status)
	return s.EntityService.Create(ctx, task)
}

// Update shallow-merges patch, normalizing a status value if present
func (s *TaskService) Update(ctx context.Context, id string, patch repository.Patch) (model.Task, error) {
	patch = normalizePatch(patch, "status", func(v string) string {
		return string(model.NormalizeTaskStatus(model.TaskStatus(v)))
	})
	return s.EntityService.Update(ctx, id, patch)
}

// Advance moves the task one step along pending, in-progress, completed.
// Completed tasks stay completed.
func (s *TaskService) Advance(ctx context.Context, id string) (model.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	next := task.Status.Next()
	if next == task.Status {
		return task, nil
	}
	return s.Update(ctx, id, repository.Patch{"status": string(next)})
}

// ByField returns the tasks attached to fieldID
func (s *TaskService) ByField(ctx context.Context, fieldID string) ([]model.Task, error) {
	return s.Filter(ctx, func(t model.Task) bool { return t.FieldID == fieldID })
}

// ByStatus returns the tasks whose normalized status is status
func (s *TaskService) ByStatus(ctx context.Context, status model.TaskStatus) ([]model.Task, error) {
	want := model.NormalizeTaskStatus(status)
	return s.Filter(ctx, func(t model.Task) bool { return model.NormalizeTaskStatus(t.Status) == want })
}
