package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports service liveness and storage reachability
type HealthController struct {
	storage Pinger
	logger  *slog.Logger
}

// NewHealthController creates a new health controller
func NewHealthController(storage Pinger, logger *slog.Logger) *HealthController {
	return &HealthController{storage: storage, logger: logger}
}

// Health handles GET /health
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.storage.Ping(pingCtx); err != nil {
		c.logger.Error("storage unreachable", "error", err.Error())
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"storage": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"storage": "ok",
	})
}
