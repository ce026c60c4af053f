// Package retry wraps a fallible call with a fixed attempt budget and
// exponential backoff.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy describes how a call is retried: how many attempts, the starting
// backoff and its cap. Every error is considered retryable.
type Policy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Do invokes op until it succeeds, the attempt budget is exhausted or ctx is
// cancelled. Backoff doubles between attempts up to MaxBackoff. The last
// error is returned once the budget runs out.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.InitialBackoff

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", attempts, lastErr)
}
