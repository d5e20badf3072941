package service

import (
	"context"
	"time"
)

// Latency is the simulated delay applied before each kind of operation
type Latency struct {
	List      time.Duration
	Get       time.Duration
	Create    time.Duration
	Update    time.Duration
	Delete    time.Duration
	Analytics time.Duration
}

// DefaultLatency mirrors the loading times the dashboard was designed around
func DefaultLatency() Latency {
	return Latency{
		List:      300 * time.Millisecond,
		Get:       200 * time.Millisecond,
		Create:    400 * time.Millisecond,
		Update:    350 * time.Millisecond,
		Delete:    250 * time.Millisecond,
		Analytics: 200 * time.Millisecond,
	}
}

// wait blocks for d or until ctx is done. A canceled caller gets ctx.Err()
// and the operation must not run.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
