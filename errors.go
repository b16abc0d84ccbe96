package backoff

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAttempts is returned by Do when maxAttempts is less than 1.
	ErrNoAttempts = errors.New("backoff: max attempts must be at least 1")
	// ErrPanic is wrapped into the error returned when the operation panics.
	ErrPanic = errors.New("backoff: operation panicked")
)

// CancelError reports that the retry loop stopped because its context was
// cancelled. It is a distinct fault kind: an operation's own error is always
// returned verbatim, so callers can tell the two apart with errors.As.
type CancelError struct {
	// Reason is the cancellation cause, as reported by context.Cause.
	Reason error
	// Last is the most recent attempt failure, nil when no attempt had failed yet.
	Last error
	// Started is true when an attempt was still outstanding at the moment the
	// cancellation won the race. The executor stops waiting for it; the
	// operation keeps running on its own and its outcome is discarded.
	Started bool
}

func (e *CancelError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("backoff: cancelled: %v (last attempt error: %v)", e.Reason, e.Last)
	}
	return fmt.Sprintf("backoff: cancelled: %v", e.Reason)
}

// Unwrap returns the cancellation reason, so errors.Is(err, context.Canceled)
// keeps working for contexts cancelled without an explicit cause.
func (e *CancelError) Unwrap() error {
	return e.Reason
}
