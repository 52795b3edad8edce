package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a failed connection to the Redis or MongoDB server.
	// The CLI treats it as fatal for those backends, unlike an unwritable
	// file cache directory.
	ErrNetwork = errors.New("cache server unreachable")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// RetryableError marks a connection failure worth another attempt, such as
// a cache server that is still starting up.
type RetryableError struct{ Err error }

// Retryable wraps err so [RetryWithBackoff] tries again. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// connectAttempts bounds how often a remote backend is pinged before Open
// gives up. retryDelay is the first pause and doubles after each attempt.
var (
	connectAttempts = 3
	retryDelay      = time.Second
)

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// [Retryable], or runs out of attempts. The last error is returned. Waiting
// stops early when ctx ends, so Ctrl+C during a slow connect exits at once.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var lastErr error

	for i := 0; i < connectAttempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < connectAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
