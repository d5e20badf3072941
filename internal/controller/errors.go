package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"farm-dashboard/internal/blob"
	"farm-dashboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// StatusClientClosedRequest is reported when the caller goes away before
// the simulated latency elapses
const StatusClientClosedRequest = 499

// respondError maps a service error to an HTTP status and JSON body and
// logs it with the request latency
func respondError(ctx *gin.Context, logger *slog.Logger, startTime time.Time, operation string, err error, attrs ...any) {
	status, body := classify(err)

	attrs = append(attrs,
		"operation", operation,
		"status_code", status,
		"error", err.Error(),
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	ctx.JSON(status, body)
}

func classify(err error) (int, gin.H) {
	var notFound *repository.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, gin.H{
			"error":   notFound.Entity + " not found",
			"message": err.Error(),
		}
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, blob.ErrNotFound):
		return http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": err.Error(),
		}
	case errors.Is(err, repository.ErrInvalidPatch):
		return http.StatusBadRequest, gin.H{
			"error":   "Invalid update",
			"message": err.Error(),
		}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, gin.H{
			"error":   "Conflict",
			"message": err.Error(),
		}
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, gin.H{
			"error":   "Request canceled",
			"message": "the request was canceled before it completed",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, gin.H{
			"error":   "Timeout",
			"message": "the request did not complete in time",
		}
	default:
		return http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "the request could not be completed",
		}
	}
}

func badRequest(ctx *gin.Context, logger *slog.Logger, title, message string, attrs ...any) {
	logger.Warn(title, append(attrs, "message", message)...)
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error":   title,
		"message": message,
	})
}
