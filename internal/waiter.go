package internal

import "context"

// waiter is a one-shot continuation resumed by the next fire. The channel
// has capacity 1 so resumption never blocks the firing goroutine, even if
// the waiter's caller already gave up on its context.
type waiter struct {
	ch chan any
}

// Wait registers a waiter and suspends the caller until the next fire of
// any mode delivers its argument. The waiter is removed from the queue
// before it is resumed, so a fire racing with registration resumes at most
// the waiters registered strictly before that fire began.
//
// Wait fails with ErrDestroyed if the signal is (or becomes) destroyed, and
// with ErrNonYieldingContext when called from a pooled execution context,
// which would otherwise suspend a context the pool expects back promptly.
func (s *Signal) Wait(ctx context.Context) (any, error) {
	if s.pool.IsPooledContext() {
		s.log.Warning().Log("wait called from a pooled execution context")
		return nil, ErrNonYieldingContext
	}

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		s.logDestroyed("wait")
		return nil, ErrDestroyed
	}
	w := &waiter{ch: make(chan any, 1)}
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()

	select {
	case v, ok := <-w.ch:
		if !ok {
			return nil, ErrDestroyed
		}
		return v, nil
	case <-ctx.Done():
		// the waiter stays queued; the next fire fills its buffer and the
		// value is dropped with it
		return nil, ctx.Err()
	}
}
