package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a cache or store backend cannot be
// reached (connection refused, timeouts). Wrap it with [Retryable] when the
// failure is worth another attempt.
var ErrUnavailable = errors.New("backend unavailable")

// Retry policy for backend connections. Three attempts with doubling
// delays rides out the usual compose startup race without stalling an
// interactive command for long.
const (
	retryAttempts   = 3
	retryBaseDelay  = time.Second
	retryMultiplier = 2
)

// retryableError marks an error as transient. Construct with [Retryable].
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient so [RetryWithBackoff] tries again.
// A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err carries the transient marker.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn, retrying errors marked [Retryable] with
// exponential backoff. Unmarked errors return immediately; context
// cancellation interrupts the wait. Redis and MongoDB connection setup
// goes through here so a backend that is still starting does not fail
// the whole process.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= retryMultiplier
		}
	}
}
