package weather

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Service assembles weather reports from a provider
type Service struct {
	provider Provider
	home     Coordinates
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithHome sets the location used when a caller gives no coordinates
func WithHome(c Coordinates) ServiceOption {
	return func(s *Service) {
		if !c.IsZero() {
			s.home = c
		}
	}
}

// NewService creates a weather service over provider
func NewService(provider Provider, opts ...ServiceOption) *Service {
	s := &Service{provider: provider, home: DefaultCoordinates}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the current snapshot. Zero coordinates mean the home
// location.
func (s *Service) Current(ctx context.Context, c Coordinates) (Snapshot, error) {
	return s.provider.FetchCurrentWeather(ctx, s.orHome(c))
}

// Forecast returns the daily forecast
func (s *Service) Forecast(ctx context.Context, c Coordinates) ([]DayForecast, error) {
	return s.provider.FetchForecast(ctx, s.orHome(c))
}

// Report fetches the snapshot and forecast concurrently
func (s *Service) Report(ctx context.Context, c Coordinates) (*Report, error) {
	c = s.orHome(c)

	var report Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.provider.FetchCurrentWeather(gctx, c)
		report.Snapshot = snap
		return err
	})
	g.Go(func() error {
		days, err := s.provider.FetchForecast(gctx, c)
		report.Forecast = days
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) orHome(c Coordinates) Coordinates {
	if c.IsZero() {
		return s.home
	}
	return c
}
