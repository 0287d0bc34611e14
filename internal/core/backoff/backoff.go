// Package backoff runs an operation with bounded attempts and exponential delay
package backoff

import (
	"context"
	"time"
)

// Policy bounds the retry loop
type Policy struct {
	// Attempts is the total number of tries including the first, minimum 1
	Attempts int
	// Base is the delay before the second try; each later delay doubles
	Base time.Duration
}

// sleep waits for d or until ctx is done, seam for tests
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Retry runs fn until it succeeds or p.Attempts is exhausted.
// After the nth failed attempt it waits Base * 2^(n-1) before trying again.
// The error from the final attempt is returned unchanged so callers can
// classify it
func Retry[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		delay := p.Base << uint(attempt-1)
		if delay > 0 {
			if serr := sleep(ctx, delay); serr != nil {
				return zero, serr
			}
		}
	}
	return zero, lastErr
}
