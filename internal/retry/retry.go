package retry

import (
	"context"
	"fmt"
	"time"
)

type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // linear backoff: attempt * Delay
}

// Do runs fn until it succeeds or MaxAttempts is reached, waiting Delay
// between attempts. Cancellation of ctx wins over the remaining attempts.
func Do(ctx context.Context, config Config, fn func() error) error {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == config.MaxAttempts {
				return fmt.Errorf("failed after %d attempts: %w", config.MaxAttempts, err)
			}

			delay := config.Delay
			if config.Backoff {
				delay = time.Duration(attempt) * config.Delay
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
		return nil
	}

	return lastErr
}
