// Package ratelimit bounds the rate of simulated user actions.
//
// Two limiters cover the two traffic shapes: WindowLimiter throttles the
// per-card parse actions inside one traversal, and PageLimiter paces
// whole-page navigations (detail visits, website fetches).
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// WindowLimiter permits at most maxRequests acquisitions within any trailing
// window. It is owned by a single traversal; no concurrent callers are
// assumed, so there is no lock.
type WindowLimiter struct {
	maxRequests int
	window      time.Duration
	stamps      []time.Time

	// Injectable for deterministic tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewWindowLimiter creates a sliding-window limiter.
func NewWindowLimiter(maxRequests int, window time.Duration) *WindowLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	return &WindowLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// Acquire blocks only as long as needed to keep the acquisition rate within
// the window, then records the action. Returns early on context cancellation.
func (l *WindowLimiter) Acquire(ctx context.Context) error {
	now := l.now()

	// Prune timestamps that fell out of the trailing window.
	cutoff := now.Add(-l.window)
	kept := l.stamps[:0]
	for _, ts := range l.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.stamps = kept

	if len(l.stamps) >= l.maxRequests {
		wait := l.window - now.Sub(l.stamps[0])
		if wait > 0 {
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
			now = l.now()
		}
	}

	l.stamps = append(l.stamps, now)
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PageLimiter paces page-level navigations with a token bucket.
type PageLimiter struct {
	limiter *rate.Limiter
}

// NewPageLimiter creates a limiter allowing rps sustained navigations per
// second with the given burst.
func NewPageLimiter(rps float64, burst int) *PageLimiter {
	if rps <= 0 {
		rps = 1.0
	}
	if burst <= 0 {
		burst = 1
	}
	return &PageLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until the next navigation may proceed.
func (p *PageLimiter) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.limiter.Wait(ctx)
}

// Allow reports whether a navigation could proceed immediately.
func (p *PageLimiter) Allow() bool {
	return p.limiter.Allow()
}
