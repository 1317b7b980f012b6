package internal

import (
	"sync"

	"github.com/joeycumines/logiface"
)

// Config carries the resolved options a Signal is created with.
type Config struct {
	// Logger receives listener panics and use-after-destroy reports.
	// May be nil, which disables logging.
	Logger *logiface.Logger[logiface.Event]

	// Step blocks until the host scheduler's next step. Deferred fires call
	// it between batches.
	Step func()

	// BatchSize is the default listener count per deferred batch.
	BatchSize int
}

// Signal owns a doubly-linked list of listener nodes, a queue of pending
// waiters, and a pool of reusable execution contexts.
//
// mu guards the list, the waiter queue and the destroyed flag. It is held
// only across pointer splices, never across listener callbacks.
type Signal struct {
	mu        sync.Mutex
	head      *Node
	tail      *Node
	count     int
	destroyed bool
	waiters   []*waiter

	pool      *Pool
	log       *logiface.Logger[logiface.Event]
	step      func()
	batchSize int
}

func New(cfg Config) *Signal {
	return &Signal{
		pool:      NewPool(cfg.Logger),
		log:       cfg.Logger,
		step:      cfg.Step,
		batchSize: cfg.BatchSize,
	}
}

// Connect allocates a node for fn and splices it at the head of the list,
// so the most recently connected listener runs first. Connecting to a
// destroyed signal returns an inert, already-disconnected handle.
func (s *Signal) Connect(fn func(any), once bool) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		s.logDestroyed("connect")
		return &Node{}
	}

	n := &Node{fn: fn, once: once, connected: true, signal: s}

	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	} else {
		s.tail = n
	}
	s.head = n
	s.count++

	return n
}

func (s *Signal) disconnect(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !n.connected {
		return
	}

	s.unlinkLocked(n)
}

// unlinkLocked splices n out using only its own prev/next, so removal never
// searches the list. The node's next pointer is intentionally kept: an
// in-flight fire that already captured n must be able to step past it.
func (s *Signal) unlinkLocked(n *Node) {
	n.connected = false
	n.fn = nil

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev = nil

	s.count--
}

// DisconnectAll unlinks every node but leaves the signal connectable.
func (s *Signal) DisconnectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unlinkAllLocked()
}

func (s *Signal) unlinkAllLocked() {
	for n := s.head; n != nil; n = n.next {
		n.connected = false
		n.fn = nil
		n.prev = nil
	}

	s.head = nil
	s.tail = nil
	s.count = 0
}

// Destroy unlinks every node, resumes every pending waiter with
// ErrDestroyed, releases the execution context pool and marks the signal
// dead. Further Connect/Fire calls are silent no-ops; Wait fails with
// ErrDestroyed. Destroy is idempotent.
func (s *Signal) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	ws := s.waiters
	s.waiters = nil
	s.unlinkAllLocked()
	s.mu.Unlock()

	for _, w := range ws {
		close(w.ch)
	}

	s.pool.Close()
}

// ListenerCount returns the number of currently connected listeners.
func (s *Signal) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.count
}

// Destroyed reports whether Destroy has been called.
func (s *Signal) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.destroyed
}

func (s *Signal) logDestroyed(op string) {
	s.log.Warning().Str("op", op).Log("use after destroy")
}
