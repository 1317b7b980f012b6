package internal

// deferredBatch is an immutable snapshot of a deferred fire: the argument,
// the batch size, and a cursor into the listener chain as it was when
// FireDeferred was called. Listeners connected after the snapshot splice in
// at the head, before the cursor, so the batch never visits them.
type deferredBatch struct {
	signal *Signal
	cursor *Node
	arg    any
	size   int
}

// FireDeferred captures a snapshot of the current list and returns
// immediately; dispatch happens on a driving goroutine that processes
// batchSize listeners per host scheduler step, through pooled contexts.
// A batchSize <= 0 selects the signal's default.
func (s *Signal) FireDeferred(batchSize int, v any) {
	if batchSize <= 0 {
		batchSize = s.batchSize
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	head, ws, ok := s.beginFire("deferred")
	if !ok {
		return
	}
	resumeWaiters(ws, v)

	if head == nil {
		return
	}

	b := &deferredBatch{signal: s, cursor: head, arg: v, size: batchSize}
	go b.drain()
}

// drain advances the cursor one batch per scheduler step. Every node is
// re-checked against the live list immediately before invocation (via
// claim), so listeners disconnected or destroyed after the snapshot are
// skipped rather than invoked on stale state.
func (b *deferredBatch) drain() {
	s := b.signal

	for b.cursor != nil {
		if s.Destroyed() {
			return
		}

		s.step()

		for i := 0; i < b.size && b.cursor != nil; i++ {
			fn, next := s.claim(b.cursor)
			if fn != nil {
				s.pool.Invoke("deferred", fn, b.arg)
			}
			b.cursor = next
		}
	}
}
