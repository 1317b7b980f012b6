package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrDestroyed is returned by Wait when the signal was destroyed before
	// the waiter could be resumed.
	ErrDestroyed = errors.New("bindables: signal destroyed")

	// ErrNonYieldingContext is returned by Wait when called from a pooled
	// execution context, which must run to completion without suspending.
	ErrNonYieldingContext = errors.New("bindables: wait from non-yielding execution context")
)

// ListenerPanicError wraps a value recovered from a panicking listener, for
// reporting through the configured logger.
type ListenerPanicError struct {
	Value any
}

func (e *ListenerPanicError) Error() string {
	return fmt.Sprintf("listener panicked: %v", e.Value)
}
