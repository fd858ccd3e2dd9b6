// Package retry provides bounded exponential backoff for browser navigations.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// Config defines retry behavior with exponential backoff.
type Config struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultConfig mirrors the navigation retry policy: three attempts with
// 1s..30s exponential backoff.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
	}
}

// Permanent wraps an error to mark it as not worth retrying.
type Permanent struct {
	Err error
}

func (p Permanent) Error() string { return p.Err.Error() }
func (p Permanent) Unwrap() error { return p.Err }

// Do executes fn with retry logic. The context aborts waits between attempts.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 0 {
				log.Debug().Int("attempts", attempt+1).Msg("Retry succeeded")
			}
			return nil
		}
		lastErr = err

		var perm Permanent
		if errors.As(err, &perm) {
			log.Debug().Err(err).Msg("Error is not retryable")
			return perm.Err
		}

		if attempt < cfg.MaxAttempts-1 {
			backoff := backoffFor(attempt, cfg)
			log.Debug().
				Int("attempt", attempt+1).
				Int("max_attempts", cfg.MaxAttempts).
				Dur("backoff", backoff).
				Err(err).
				Msg("Retrying after backoff")

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	log.Warn().Int("attempts", cfg.MaxAttempts).Err(lastErr).Msg("Max retry attempts exceeded")
	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

func backoffFor(attempt int, cfg Config) time.Duration {
	backoff := float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt))
	if backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}
	return time.Duration(backoff)
}
