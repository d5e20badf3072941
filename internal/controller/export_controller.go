package controller

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"farm-dashboard/internal/export"
	"farm-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ExportController serves report downloads and the export archive
type ExportController struct {
	exports *service.ExportService
	logger  *slog.Logger
}

// NewExportController creates a new export controller
func NewExportController(exports *service.ExportService, logger *slog.Logger) *ExportController {
	return &ExportController{exports: exports, logger: logger}
}

// Register mounts the download and archive routes on the reports group
func (c *ExportController) Register(group *gin.RouterGroup) {
	group.GET("/expenses.csv", c.download(export.FormatCSV))
	group.GET("/report.xlsx", c.download(export.FormatXLSX))
	group.POST("/exports", c.Archive)
	group.GET("/exports", c.ListArchives)
	group.GET("/exports/*key", c.OpenArchive)
}

// download renders the report filtered by the query string as an attachment
func (c *ExportController) download(format export.Format) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startTime := time.Now()

		filter, ok := parseReportFilter(ctx, c.logger)
		if !ok {
			return
		}

		var buf bytes.Buffer
		filename, err := c.exports.Render(ctx.Request.Context(), filter, format, &buf)
		if err != nil {
			respondError(ctx, c.logger, startTime, "render report", err, "format", string(format))
			return
		}

		c.logger.Info("report rendered",
			"format", string(format),
			"filename", filename,
			"size", buf.Len(),
			"latency_ms", time.Since(startTime).Milliseconds(),
		)
		ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		ctx.Data(http.StatusOK, format.ContentType(), buf.Bytes())
	}
}

// Archive handles POST /v1/reports/exports?format=csv|xlsx
func (c *ExportController) Archive(ctx *gin.Context) {
	startTime := time.Now()

	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		badRequest(ctx, c.logger, "Invalid format", "format must be one of: csv, xlsx", "format", ctx.Query("format"))
		return
	}
	filter, ok := parseReportFilter(ctx, c.logger)
	if !ok {
		return
	}

	info, err := c.exports.Archive(ctx.Request.Context(), filter, format)
	if err != nil {
		respondError(ctx, c.logger, startTime, "archive report", err, "format", string(format))
		return
	}
	ctx.JSON(http.StatusCreated, info)
}

// ListArchives handles GET /v1/reports/exports
func (c *ExportController) ListArchives(ctx *gin.Context) {
	startTime := time.Now()

	archives, err := c.exports.Archives(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, startTime, "list archives", err)
		return
	}
	ctx.JSON(http.StatusOK, archives)
}

// OpenArchive handles GET /v1/reports/exports/{key}
func (c *ExportController) OpenArchive(ctx *gin.Context) {
	startTime := time.Now()
	key := ctx.Param("key")

	info, body, err := c.exports.Open(ctx.Request.Context(), key)
	if err != nil {
		respondError(ctx, c.logger, startTime, "open archive", err, "key", key)
		return
	}
	defer body.Close()

	extra := map[string]string{}
	if name := info.Metadata["filename"]; name != "" {
		extra["Content-Disposition"] = `attachment; filename="` + name + `"`
	}
	ctx.DataFromReader(http.StatusOK, info.Size, info.ContentType, body, extra)
	c.logger.Debug("archive served",
		"key", info.Key,
		"size", info.Size,
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
}
