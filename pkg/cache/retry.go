package cache

import (
	"context"
	"errors"
	"time"
)

// Retry bounds how often and how patiently an operation is retried.
type Retry struct {
	Attempts int
	Delay    time.Duration // before the second attempt; doubles afterwards
}

// DefaultRetry is used when a backend connects: Redis pings and MongoDB
// pings both go through it.
var DefaultRetry = Retry{Attempts: 3, Delay: 200 * time.Millisecond}

type retryable struct{ err error }

func (e retryable) Error() string { return e.err.Error() }
func (e retryable) Unwrap() error { return e.err }

// Retryable marks err as transient. Only marked errors are retried.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re retryable
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn under DefaultRetry.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultRetry.Do(ctx, fn)
}

// Do calls fn until it succeeds, fails with an unmarked error, or runs out
// of attempts. The last error is returned without its Retryable mark.
func (r Retry) Do(ctx context.Context, fn func() error) error {
	attempts := max(r.Attempts, 1)
	delay := r.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	if re, ok := err.(retryable); ok {
		return re.err
	}
	return err
}
