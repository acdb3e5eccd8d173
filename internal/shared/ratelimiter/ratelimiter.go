// Package ratelimiter throttles calls to metered upstream APIs.
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"mandacaru_broker/internal/platform/logger"
)

// RateLimiter allows at most limit calls per interval, using a fixed window.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a RateLimiter. limit <= 0 disables throttling.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Wait blocks until another call fits in the window or ctx is done.
// Callers reserve a slot under the lock and sleep without holding it.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}

	rl.mu.Lock()
	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count >= rl.limit {
		// window full: take a slot in the next one
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count = 0
	}
	rl.count++
	slot := rl.lastReset
	rl.mu.Unlock()

	d := slot.Sub(now)
	if d <= 0 {
		return ctx.Err()
	}
	logger.Get().Infow("rate limit reached, waiting", "limit", rl.limit, "wait", d)
	if err := rl.sleep(ctx, d); err != nil {
		rl.mu.Lock()
		if rl.lastReset.Equal(slot) && rl.count > 0 {
			rl.count--
		}
		rl.mu.Unlock()
		return err
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
