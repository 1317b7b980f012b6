// Package bindables is an in-process publish/subscribe primitive with O(1)
// unsubscription, safe listener mutation during a fire, and a choice of
// firing semantics: pooled, async-isolated, synchronous, or batched across
// host scheduler steps.
package bindables

import (
	"context"

	"github.com/ForceWarrior/SkidBindables/internal"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Signal dispatches values of type T to connected listeners. Listeners run
// most-recently-connected first in every ordered firing mode.
type Signal[T any] struct {
	core *internal.Signal
}

// New creates a signal. All options are optional; by default nothing is
// logged and deferred fires yield the goroutine between batches.
func New[T any](opts ...Option) *Signal[T] {
	cfg := resolveOptions(opts)

	return &Signal[T]{internal.New(internal.Config{
		Logger:    cfg.logger,
		Step:      cfg.stepper.Wait,
		BatchSize: cfg.batchSize,
	})}
}

func wrap[T any](fn func(T)) func(any) {
	return func(v any) { fn(as[T](v)) }
}

// Connect registers fn as a listener and returns its connection handle.
// It is safe to call from inside a listener during a fire; the in-progress
// fire never invokes the new listener. Connecting to a destroyed signal
// returns an inert, already-disconnected handle.
func (s *Signal[T]) Connect(fn func(T)) Connection {
	return Connection{s.core.Connect(wrap(fn), false)}
}

// Once registers fn to run at most one time across the signal's lifetime.
// The listener's node is disconnected atomically with being claimed for
// dispatch, so fn re-entering the signal never observes its own node
// connected, and concurrent fires cannot run it twice.
func (s *Signal[T]) Once(fn func(T)) Connection {
	return Connection{s.core.Connect(wrap(fn), true)}
}

// Wait suspends the caller until the next fire of any mode, and returns
// that fire's value. It returns ErrDestroyed if the signal is destroyed
// before the waiter is resumed, ctx.Err() if ctx is done first, and
// ErrNonYieldingContext when called from a pooled execution context.
func (s *Signal[T]) Wait(ctx context.Context) (T, error) {
	v, err := s.core.Wait(ctx)
	return as[T](v), err
}

// Fire dispatches v to every connected listener in list order, each on a
// pooled execution context. A panicking listener is reported through the
// configured logger and does not stop its siblings. Listeners must return
// promptly; pooled contexts are reused and must not suspend.
func (s *Signal[T]) Fire(v T) { s.core.Fire(v) }

// FireAsync dispatches v to every connected listener on its own goroutine,
// with no ordering across listeners. Listeners are free to block.
func (s *Signal[T]) FireAsync(v T) { s.core.FireAsync(v) }

// FireSync invokes listeners on the caller's goroutine, sequentially, in
// list order. A listener panic aborts the remaining listeners of this call
// and propagates to the caller.
func (s *Signal[T]) FireSync(v T) { s.core.FireSync(v) }

// FireDeferred snapshots the current listeners and returns immediately;
// batchSize listeners are dispatched per host scheduler step until the
// snapshot is drained. Listeners connected after the call never see v.
// A batchSize <= 0 selects the configured default (2000).
func (s *Signal[T]) FireDeferred(batchSize int, v T) { s.core.FireDeferred(batchSize, v) }

// DisconnectAll removes every listener. The signal remains usable.
func (s *Signal[T]) DisconnectAll() { s.core.DisconnectAll() }

// Destroy removes every listener, resumes outstanding waiters with
// ErrDestroyed, and releases the execution context pool. Afterwards
// Connect and Fire calls are silent no-ops. Destroy is idempotent.
func (s *Signal[T]) Destroy() { s.core.Destroy() }

// ListenerCount returns the number of currently connected listeners.
func (s *Signal[T]) ListenerCount() int { return s.core.ListenerCount() }

// Destroyed reports whether Destroy has been called.
func (s *Signal[T]) Destroyed() bool { return s.core.Destroyed() }

// Connection is the handle returned by Connect and Once. The zero value is
// inert. A Connection does not keep its signal's listener list alive once
// disconnected.
type Connection struct {
	node *internal.Node
}

// Disconnect removes the listener from its signal in O(1). Disconnecting
// through a stale handle is a safe no-op, including from inside the
// listener's own callback during a fire.
func (c Connection) Disconnect() { c.node.Disconnect() }

// Connected reports whether the listener is still registered.
func (c Connection) Connected() bool { return c.node.Connected() }
