package weather

import (
	"context"
	"errors"
	"log/slog"
)

// Fallback serves the primary provider and substitutes the mock payload
// whenever the primary is missing or fails. It never returns an error
// other than the caller's own cancellation.
type Fallback struct {
	primary Provider
	logger  *slog.Logger
}

// NewFallback wraps primary, which may be nil
func NewFallback(primary Provider, logger *slog.Logger) *Fallback {
	return &Fallback{primary: primary, logger: logger}
}

func (f *Fallback) FetchCurrentWeather(ctx context.Context, c Coordinates) (Snapshot, error) {
	if f.primary != nil {
		snap, err := f.primary.FetchCurrentWeather(ctx, c)
		if err == nil {
			return snap, nil
		}
		if ctx.Err() != nil {
			return Snapshot{}, ctx.Err()
		}
		f.warn("current weather", c, err)
	}
	return MockSnapshot(), nil
}

func (f *Fallback) FetchForecast(ctx context.Context, c Coordinates) ([]DayForecast, error) {
	if f.primary != nil {
		days, err := f.primary.FetchForecast(ctx, c)
		if err == nil && len(days) > 0 {
			return days, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil {
			err = errors.New("empty forecast")
		}
		f.warn("forecast", c, err)
	}
	return MockForecast(), nil
}

func (f *Fallback) warn(what string, c Coordinates, err error) {
	level := slog.LevelWarn
	if errors.Is(err, ErrNoAPIKey) {
		level = slog.LevelDebug
	}
	f.logger.Log(context.Background(), level, "weather provider failed, using mock data",
		"request", what,
		"coordinates", c.String(),
		"error", err.Error(),
	)
}
