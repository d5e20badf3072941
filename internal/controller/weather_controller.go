package controller

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"farm-dashboard/internal/model"
	"farm-dashboard/internal/service"
	"farm-dashboard/internal/weather"

	"github.com/gin-gonic/gin"
)

// WeatherController serves weather for a position or a field
type WeatherController struct {
	weather *weather.Service
	fields  service.CRUD[model.Field]
	logger  *slog.Logger
}

// NewWeatherController creates a new weather controller
func NewWeatherController(svc *weather.Service, fields service.CRUD[model.Field], logger *slog.Logger) *WeatherController {
	return &WeatherController{weather: svc, fields: fields, logger: logger}
}

// Register mounts the weather routes on group
func (c *WeatherController) Register(group *gin.RouterGroup) {
	group.GET("", c.GetReport)
	group.GET("/current", c.GetCurrent)
	group.GET("/forecast", c.GetForecast)
}

// GetReport handles GET /v1/weather
// Query parameters:
//   - lat, lon (optional): position; both or neither
//   - field_id (optional): use the field's coordinates instead
//
// Without a position the configured home location is used.
func (c *WeatherController) GetReport(ctx *gin.Context) {
	startTime := time.Now()
	at, ok := c.coordinates(ctx, startTime)
	if !ok {
		return
	}
	report, err := c.weather.Report(ctx.Request.Context(), at)
	if err != nil {
		respondError(ctx, c.logger, startTime, "weather report", err, "coordinates", at.String())
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// GetCurrent handles GET /v1/weather/current
func (c *WeatherController) GetCurrent(ctx *gin.Context) {
	startTime := time.Now()
	at, ok := c.coordinates(ctx, startTime)
	if !ok {
		return
	}
	snapshot, err := c.weather.Current(ctx.Request.Context(), at)
	if err != nil {
		respondError(ctx, c.logger, startTime, "current weather", err, "coordinates", at.String())
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

// GetForecast handles GET /v1/weather/forecast
func (c *WeatherController) GetForecast(ctx *gin.Context) {
	startTime := time.Now()
	at, ok := c.coordinates(ctx, startTime)
	if !ok {
		return
	}
	forecast, err := c.weather.Forecast(ctx.Request.Context(), at)
	if err != nil {
		respondError(ctx, c.logger, startTime, "weather forecast", err, "coordinates", at.String())
		return
	}
	ctx.JSON(http.StatusOK, forecast)
}

func (c *WeatherController) coordinates(ctx *gin.Context, startTime time.Time) (weather.Coordinates, bool) {
	if fieldID := ctx.Query("field_id"); fieldID != "" {
		field, err := c.fields.GetByID(ctx.Request.Context(), fieldID)
		if err != nil {
			respondError(ctx, c.logger, startTime, "resolve field location", err, "field_id", fieldID)
			return weather.Coordinates{}, false
		}
		return weather.FromPoint(field.Coordinates), true
	}

	latStr, lonStr := ctx.Query("lat"), ctx.Query("lon")
	if latStr == "" && lonStr == "" {
		return weather.Coordinates{}, true
	}
	if latStr == "" || lonStr == "" {
		badRequest(ctx, c.logger, "Missing required parameter", "lat and lon must be given together")
		return weather.Coordinates{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		badRequest(ctx, c.logger, "Invalid lat", "lat must be a decimal number", "lat", latStr)
		return weather.Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		badRequest(ctx, c.logger, "Invalid lon", "lon must be a decimal number", "lon", lonStr)
		return weather.Coordinates{}, false
	}

	at := weather.Coordinates{Lat: lat, Lon: lon}
	if err := at.Validate(); err != nil {
		badRequest(ctx, c.logger, "Invalid coordinates", err.Error(), "lat", latStr, "lon", lonStr)
		return weather.Coordinates{}, false
	}
	return at, true
}
