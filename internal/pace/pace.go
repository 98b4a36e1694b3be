// Package pace throttles a running sort so that each step stays visible.
package pace

import (
	"context"
	"time"
)

// Pacer suspends the caller between observable steps. Implementations must
// return ctx.Err() as soon as the context is done.
type Pacer interface {
	Pace(ctx context.Context, d time.Duration) error
}

// Timer waits on the wall clock.
type Timer struct{}

func NewTimer() Timer { return Timer{} }

func (Timer) Pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Instant never waits; it only reports cancellation.
type Instant struct{}

func (Instant) Pace(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Counter wraps another Pacer and counts the pauses it has served.
type Counter struct {
	Pacer Pacer
	Calls int
	Total time.Duration
}

func (c *Counter) Pace(ctx context.Context, d time.Duration) error {
	c.Calls++
	c.Total += d
	if c.Pacer == nil {
		return ctx.Err()
	}
	return c.Pacer.Pace(ctx, d)
}

// Millis converts a pace given in milliseconds.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
