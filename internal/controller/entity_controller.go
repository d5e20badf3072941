package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"farm-dashboard/internal/repository"
	"farm-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ListFilter chooses a narrowed listing from the query string. A nil
// fetch means the full collection.
type ListFilter[T any] func(ctx *gin.Context) (fetch func(context.Context) ([]T, error), err error)

// EntityController exposes CRUD endpoints for one entity collection
type EntityController[T any] struct {
	name    string
	service service.CRUD[T]
	filter  ListFilter[T]
	logger  *slog.Logger
}

// NewEntityController creates a controller for the collection called name
func NewEntityController[T any](name string, svc service.CRUD[T], logger *slog.Logger) *EntityController[T] {
	return &EntityController[T]{
		name:    name,
		service: svc,
		logger:  logger,
	}
}

// WithListFilter enables query-string filtering on List
func (c *EntityController[T]) WithListFilter(filter ListFilter[T]) *EntityController[T] {
	c.filter = filter
	return c
}

// Register mounts the CRUD routes on group
func (c *EntityController[T]) Register(group *gin.RouterGroup) {
	group.GET("", c.List)
	group.GET("/:id", c.Get)
	group.POST("", c.Create)
	group.PATCH("/:id", c.Update)
	group.DELETE("/:id", c.Delete)
}

// List handles GET /v1/{collection}
func (c *EntityController[T]) List(ctx *gin.Context) {
	startTime := time.Now()

	fetch := c.service.GetAll
	if c.filter != nil {
		filtered, err := c.filter(ctx)
		if err != nil {
			badRequest(ctx, c.logger, "Invalid filter", err.Error(), "entity", c.name)
			return
		}
		if filtered != nil {
			fetch = filtered
		}
	}

	items, err := fetch(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, startTime, "list", err, "entity", c.name)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Get handles GET /v1/{collection}/:id
func (c *EntityController[T]) Get(ctx *gin.Context) {
	startTime := time.Now()
	id := ctx.Param("id")

	item, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, startTime, "get", err, "entity", c.name, "id", id)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create handles POST /v1/{collection}. Any id in the body is replaced.
func (c *EntityController[T]) Create(ctx *gin.Context) {
	startTime := time.Now()

	var item T
	if err := ctx.ShouldBindJSON(&item); err != nil {
		badRequest(ctx, c.logger, "Invalid request body", err.Error(), "entity", c.name)
		return
	}

	created, err := c.service.Create(ctx.Request.Context(), item)
	if err != nil {
		respondError(ctx, c.logger, startTime, "create", err, "entity", c.name)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// Update handles PATCH /v1/{collection}/:id with a shallow merge
func (c *EntityController[T]) Update(ctx *gin.Context) {
	startTime := time.Now()
	id := ctx.Param("id")

	var patch repository.Patch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, c.logger, "Invalid request body", "body must be a JSON object: "+err.Error(), "entity", c.name, "id", id)
		return
	}

	updated, err := c.service.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, c.logger, startTime, "update", err, "entity", c.name, "id", id)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/{collection}/:id
func (c *EntityController[T]) Delete(ctx *gin.Context) {
	startTime := time.Now()
	id := ctx.Param("id")

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.logger, startTime, "delete", err, "entity", c.name, "id", id)
		return
	}
	ctx.Status(http.StatusNoContent)
}
