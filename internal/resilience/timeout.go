package resilience

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Timeout when the bound elapses first.
var ErrTimeout = errors.New("request timeout")

// Timeout runs fn and returns its error, or ErrTimeout if fn has not
// returned within d. On expiry the context passed to fn is cancelled with
// ErrTimeout as its cause (see TimedOut); fn's late result is discarded.
func Timeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	callCtx, cancel := context.WithCancelCause(ctx)

	done := make(chan error, 1)
	go func() { done <- fn(callCtx) }()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case err := <-done:
		cancel(nil)
		return err
	case <-timer.C:
		cancel(ErrTimeout)
		return ErrTimeout
	case <-ctx.Done():
		cancel(nil)
		return ctx.Err()
	}
}

// TimedOut reports whether ctx was cancelled by an expired Timeout bound.
func TimedOut(ctx context.Context) bool {
	return ctx.Err() != nil && errors.Is(context.Cause(ctx), ErrTimeout)
}
