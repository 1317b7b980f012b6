package internal

// DefaultBatchSize is the number of listeners dispatched per scheduler step
// by a deferred fire, when no explicit batch size is given.
const DefaultBatchSize = 2000

// beginFire checks the destroyed flag, captures the list head and takes the
// pending waiters in a single critical section, so a fire resumes exactly
// the waiters registered strictly before it began.
func (s *Signal) beginFire(mode string) (head *Node, ws []*waiter, ok bool) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		s.logDestroyed(mode)
		return nil, nil, false
	}
	head = s.head
	ws = s.waiters
	s.waiters = nil
	s.mu.Unlock()

	return head, ws, true
}

// claim captures the traversal state for n before its callback runs. The
// returned next pointer is what makes mutation during a fire safe: a
// callback disconnecting n (or any other node) cannot break the chain the
// traversal already captured, and a callback connecting a new node splices
// it at the head, strictly before the traversal's position.
//
// A nil fn means skip: the node was disconnected after the fire began.
// Once nodes are unlinked here, atomically with the connected check, so a
// callback that re-enters the signal never observes its own node connected,
// and concurrent fires cannot claim the same once node twice.
func (s *Signal) claim(n *Node) (fn func(any), next *Node) {
	s.mu.Lock()
	next = n.next
	if n.connected {
		fn = n.fn
		if n.once {
			s.unlinkLocked(n)
		}
	}
	s.mu.Unlock()

	return fn, next
}

// Fire dispatches v to every connected listener in list order, each on a
// pooled execution context. A panicking listener is reported through the
// logger and does not stop the remaining listeners. Listeners must return
// promptly: pooled contexts are reused and must not suspend.
func (s *Signal) Fire(v any) {
	head, ws, ok := s.beginFire("fire")
	if !ok {
		return
	}
	resumeWaiters(ws, v)

	for n := head; n != nil; {
		fn, next := s.claim(n)
		if fn != nil {
			s.pool.Invoke("fire", fn, v)
		}
		n = next
	}
}

// FireAsync dispatches v to every connected listener, each on its own
// goroutine. No ordering is guaranteed across listeners; panics are
// isolated per listener. Listeners are free to block.
func (s *Signal) FireAsync(v any) {
	head, ws, ok := s.beginFire("async")
	if !ok {
		return
	}
	resumeWaiters(ws, v)

	for n := head; n != nil; {
		fn, next := s.claim(n)
		if fn != nil {
			go s.invokeIsolated("async", fn, v)
		}
		n = next
	}
}

// FireSync invokes every connected listener on the caller's goroutine, in
// strict list order. Panics are not recovered: a panicking listener aborts
// the remaining listeners of this call and propagates to the caller.
func (s *Signal) FireSync(v any) {
	head, ws, ok := s.beginFire("sync")
	if !ok {
		return
	}
	resumeWaiters(ws, v)

	for n := head; n != nil; {
		fn, next := s.claim(n)
		if fn != nil {
			fn(v)
		}
		n = next
	}
}

func (s *Signal) invokeIsolated(mode string, fn func(any), v any) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Err().Err(&ListenerPanicError{Value: r}).Str("mode", mode).Log("listener panicked")
		}
	}()

	fn(v)
}

func resumeWaiters(ws []*waiter, v any) {
	for _, w := range ws {
		w.ch <- v // cap 1, each waiter resumed at most once
	}
}
