package oracle

import (
	"context"
	"time"

	"newsradar/internal/metrics"
	"newsradar/internal/ratelimit"
	"newsradar/internal/retry"
)

// WithTimeout bounds each Generate call with its own deadline. Expiry
// surfaces as a normal oracle error and call sites degrade on it.
func WithTimeout(c Client, timeout time.Duration) Client {
	return Func(func(ctx context.Context, prompt string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return c.Generate(ctx, prompt)
	})
}

// WithRetry retries failed Generate calls. Generate must be safe to repeat.
func WithRetry(c Client, cfg retry.Config) Client {
	return Func(func(ctx context.Context, prompt string) (string, error) {
		var out string
		err := retry.Do(ctx, cfg, func() error {
			var genErr error
			out, genErr = c.Generate(ctx, prompt)
			return genErr
		})
		return out, err
	})
}

// WithLimit charges every Generate call against the limiter's daily budget.
// An exhausted budget is an oracle failure like any other.
func WithLimit(c Client, l *ratelimit.Limiter) Client {
	return Func(func(ctx context.Context, prompt string) (string, error) {
		if !l.Allow() {
			return "", ratelimit.ErrBudgetExhausted
		}
		return c.Generate(ctx, prompt)
	})
}

// WithMetrics counts calls and failures on the global metrics registry.
// Wrap the backend directly so retries are counted per attempt.
func WithMetrics(c Client) Client {
	return Func(func(ctx context.Context, prompt string) (string, error) {
		metrics.Global.AddOracleCalls(1)
		out, err := c.Generate(ctx, prompt)
		if err != nil {
			metrics.Global.AddOracleFailures(1)
		}
		return out, err
	})
}
