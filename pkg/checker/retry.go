package checker

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/akvise/trends-checker/pkg/trends"
)

// RetryPolicy bounds the fetch attempts for one region.
type RetryPolicy struct {
	Retries int     // retries beyond the first attempt
	Backoff float64 // exponential base, seconds
	Jitter  float64 // max random addition, seconds
}

// retryDelay computes the wait before retry number attempt (0-based):
// backoff * 2^attempt plus a uniform random slice of the jitter window.
func (p RetryPolicy) retryDelay(attempt int, randFloat func() float64) time.Duration {
	delay := p.Backoff * math.Pow(2, float64(attempt))
	if p.Jitter > 0 {
		delay += randFloat() * p.Jitter
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay * float64(time.Second))
}

// fetchWithRetry runs fetch attempts for one region until one succeeds or
// the retry budget is spent, then returns the last error. Rate-limit and
// other transient failures retry identically; only context cancellation
// cuts the loop short.
func (c *Checker) fetchWithRetry(ctx context.Context, geo string) (*trends.RawSeries, RelatedSource, error) {
	var lastErr error
	attempts := c.policy.Retries + 1
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		series, related, err := c.fetcher.Fetch(ctx, geo)
		if err == nil {
			return series, related, nil
		}
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		delay := c.policy.retryDelay(attempt, c.randFloat)
		kind := "temporary error"
		if trends.IsRateLimited(err) {
			kind = "rate limited"
		}
		c.log.WithField("geo", regionLabel(geo)).
			WithField("delay", fmt.Sprintf("%.1fs", delay.Seconds())).
			Warn(kind + "; retrying")

		if err := c.sleep(ctx, delay); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, lastErr
}

// sleepContext waits for the duration unless the context is cancelled
// first.
func sleepContext(ctx context.Context, d time.Duration) error {
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
