package fs

import (
	"context"
	"fmt"
	"time"
)

// backoff retries an operation on transient errors. The delay doubles from
// base after each failed attempt and never exceeds max.
type backoff struct {
	attempts int
	base     time.Duration
	max      time.Duration
}

// copyBackoff gives a game roughly a second and a half to release a save
// file it is still writing.
var copyBackoff = backoff{attempts: 5, base: 100 * time.Millisecond, max: 2 * time.Second}

func (b backoff) delay(attempt int) time.Duration {
	d := b.base << (attempt - 1)
	if d > b.max || d <= 0 {
		return b.max
	}
	return d
}

func (b backoff) do(ctx context.Context, op string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= b.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return fmt.Errorf("%s failed permanently: %w", op, lastErr)
		}
		if attempt == b.attempts {
			break
		}

		t := time.NewTimer(b.delay(attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", op, b.attempts, lastErr)
}
