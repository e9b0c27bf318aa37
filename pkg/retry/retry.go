// Package retry provides a bounded retry combinator.
package retry

import (
	"context"
	"errors"
	"fmt"
)

// ErrExhausted marks a Do call that ran out of attempts on retryable errors.
var ErrExhausted = errors.New("retry attempts exhausted")

// Do calls fn up to attempts times. It stops on success, on the first error
// isRetryable rejects, or when ctx is done. When every attempt fails with a
// retryable error the result wraps both ErrExhausted and the last error.
func Do(ctx context.Context, attempts int, isRetryable func(error) bool, fn func(ctx context.Context, attempt int) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = fn(ctx, attempt)
		if last == nil {
			return nil
		}
		if isRetryable == nil || !isRetryable(last) {
			return last
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, last)
}
