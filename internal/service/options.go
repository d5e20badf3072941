package service

import (
	"time"

	"farm-dashboard/internal/blob"
)

const defaultMaintenanceHorizon = 30 // days

type options struct {
	now                func() time.Time
	maintenanceHorizon int
	store              blob.Store
}

// Option configures the services
type Option func(*options)

// WithClock sets the source of "today" for date-relative analytics
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		o.now = fn
	}
}

// WithMaintenanceHorizon sets how many days ahead upcoming maintenance looks
func WithMaintenanceHorizon(days int) Option {
	return func(o *options) {
		o.maintenanceHorizon = days
	}
}

// WithBlobStore sets where archived exports are kept
func WithBlobStore(store blob.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:                time.Now,
		maintenanceHorizon: defaultMaintenanceHorizon,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
