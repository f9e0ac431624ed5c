package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock advances only when slept on.
type fakeClock struct {
	// now is the current fake time.
	now time.Time
	// sleeps counts completed Sleep calls.
	sleeps int
	// slept is the total requested sleep.
	slept time.Duration
	// onSleep runs after each sleep with the sleep count.
	onSleep func(n int)
}

// newFakeClock starts at a fixed instant.
func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.now = c.now.Add(d)
	c.slept += d
	c.sleeps++

	if c.onSleep != nil {
		c.onSleep(c.sleeps)
	}

	return ctx.Err()
}

// TestSystemClock_Sleep covers both the timer and the cancellation paths.
func TestSystemClock_Sleep(t *testing.T) {
	t.Parallel()

	var clock SystemClock

	start := clock.Now()
	require.NoError(t, clock.Sleep(context.Background(), 5*time.Millisecond))
	require.GreaterOrEqual(t, clock.Now().Sub(start), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, clock.Sleep(ctx, time.Hour), context.Canceled)
	require.ErrorIs(t, clock.Sleep(ctx, 0), context.Canceled)
	require.NoError(t, clock.Sleep(context.Background(), 0))
}
