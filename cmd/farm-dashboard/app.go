package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"farm-dashboard/internal/blob"
	"farm-dashboard/internal/config"
	"farm-dashboard/internal/repository"
	"farm-dashboard/internal/service"
	"farm-dashboard/internal/weather"

	"github.com/redis/go-redis/v9"
)

// app holds the wired service graph shared by every command
type app struct {
	repos    *repository.Repositories
	services *service.Services
	weather  *weather.Service
	redis    *redis.Client
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	repos, err := repository.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	store, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("failed to open blob store: %w", err)
	}

	a := &app{
		repos:    repos,
		services: service.New(repos, cfg.Latency.Durations(), logger, service.WithBlobStore(store)),
	}
	a.weather = weather.NewService(a.weatherProvider(cfg.Weather, cfg.Redis, logger), weather.WithHome(cfg.Weather.Home()))

	logger.Info("application initialized",
		"storage", cfg.Storage.Driver,
		"blob", cfg.Blob.Driver,
		"weather_cache", cfg.Weather.Cache,
		"latency", cfg.Latency.Enabled,
	)
	return a, nil
}

// weatherProvider builds OpenWeather behind an optional cache, with the
// mock payload as the fallback for every failure
func (a *app) weatherProvider(cfg config.WeatherConfig, rc config.RedisConfig, logger *slog.Logger) weather.Provider {
	var provider weather.Provider = weather.NewOpenWeather(cfg.APIKey,
		weather.WithBaseURL(cfg.BaseURL),
		weather.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)

	if cfg.APIKey != "" {
		switch cfg.Cache {
		case "memory":
			provider = weather.NewCached(provider, weather.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL), logger)
		case "redis":
			a.redis = redis.NewClient(&redis.Options{
				Addr:     rc.Addr,
				Password: rc.Password,
				DB:       rc.DB,
			})
			provider = weather.NewCached(provider, weather.NewRedisCache(a.redis, "farm:", cfg.CacheTTL), logger)
		}
	}

	return weather.NewFallback(provider, logger)
}

func (a *app) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.repos.Close())
	return errors.Join(errs...)
}

// commandContext bounds one-shot CLI commands
func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 2*time.Minute)
}
