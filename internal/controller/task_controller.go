package controller

import (
	"log/slog"
	"net/http"
	"time"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskController adds workflow endpoints to the task collection
type TaskController struct {
	*EntityController[model.Task]
	tasks *service.TaskService
}

// NewTaskController creates a new task controller
func NewTaskController(tasks *service.TaskService, logger *slog.Logger) *TaskController {
	return &TaskController{
		EntityController: NewEntityController[model.Task]("task", tasks, logger).WithListFilter(TaskFilter(tasks)),
		tasks:            tasks,
	}
}

// Register mounts CRUD plus POST /:id/advance
func (c *TaskController) Register(group *gin.RouterGroup) {
	c.EntityController.Register(group)
	group.POST("/:id/advance", c.Advance)
}

// Advance handles POST /v1/tasks/:id/advance
func (c *TaskController) Advance(ctx *gin.Context) {
	startTime := time.Now()
	id := ctx.Param("id")

	task, err := c.tasks.Advance(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, startTime, "advance", err, "entity", "task", "id", id)
		return
	}
	ctx.JSON(http.StatusOK, task)
}
