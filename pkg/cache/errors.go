package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a backend failure worth another attempt. The
// Redis backend wraps connection-level errors this way; a corrupt or
// expired entry is never retryable, it is just a miss.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn, retrying retryable failures with doubling
// delays. Description lookups go through this so a brief Redis blip
// does not force a re-extraction.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const maxAttempts = 3

	var err error
	for attempt, delay := 1, time.Second; ; attempt, delay = attempt+1, delay*2 {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == maxAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
