package bindables

import "github.com/ForceWarrior/SkidBindables/internal"

var (
	// ErrDestroyed is returned by Wait when the signal was destroyed before
	// the waiter could be resumed.
	ErrDestroyed = internal.ErrDestroyed

	// ErrNonYieldingContext is returned by Wait when called from a pooled
	// execution context, which must not suspend.
	ErrNonYieldingContext = internal.ErrNonYieldingContext
)

// ListenerPanicError wraps the value recovered from a panicking listener;
// it is what the configured logger receives for isolated firing modes.
type ListenerPanicError = internal.ListenerPanicError
