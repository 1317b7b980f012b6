package internal

import (
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/petermattis/goid"
)

// Pool maintains a free list of execution contexts, each a long-lived
// goroutine that runs one listener callback at a time. Contexts are
// recycled across fires so repeated dispatch allocates nothing per
// invocation; the pool has no upper bound and only spawns when the free
// list is empty.
type Pool struct {
	mu     sync.Mutex
	free   []*ExecContext
	closed bool

	log *logiface.Logger[logiface.Event]

	// goroutine id -> *ExecContext for every live pooled worker. Pooled
	// contexts may not suspend; Wait consults this to refuse them.
	gids sync.Map
}

// ExecContext is a reusable place to run one callback in isolation. It is
// never shared concurrently: Invoke holds it from acquire to release.
type ExecContext struct {
	pool  *Pool
	tasks chan execTask
	done  chan struct{}
}

type execTask struct {
	fn   func(any)
	arg  any
	mode string
}

func NewPool(log *logiface.Logger[logiface.Event]) *Pool {
	return &Pool{log: log}
}

// Invoke runs fn(arg) on a pooled context and returns once the callback
// completes. A panic in fn is recovered inside the context, reported
// through the logger, and never reaches the caller.
func (p *Pool) Invoke(mode string, fn func(any), arg any) {
	c := p.acquire()
	if c == nil {
		// pool closed mid-fire; still isolate the callback
		p.invoke(execTask{fn: fn, arg: arg, mode: mode})
		return
	}

	c.tasks <- execTask{fn: fn, arg: arg, mode: mode}
	<-c.done

	p.release(c)
}

// IsPooledContext reports whether the calling goroutine is a pooled,
// non-yielding execution context.
func (p *Pool) IsPooledContext() bool {
	_, ok := p.gids.Load(goid.Get())
	return ok
}

// Close discards every idle context and marks the pool dead. Contexts busy
// with a callback exit when it completes. Acquire-after-close falls back to
// inline invocation, so an in-flight fire still drains.
func (p *Pool) Close() {
	p.mu.Lock()
	free := p.free
	p.free = nil
	p.closed = true
	p.mu.Unlock()

	for _, c := range free {
		close(c.tasks)
	}
}

func (p *Pool) acquire() *ExecContext {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	if n := len(p.free); n > 0 {
		c := p.free[n-1]
		p.free = p.free[:n-1]
		return c
	}

	c := &ExecContext{
		pool:  p,
		tasks: make(chan execTask, 1),
		done:  make(chan struct{}, 1),
	}
	go c.run()

	return c
}

func (p *Pool) release(c *ExecContext) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		close(c.tasks)
		return
	}

	p.free = append(p.free, c)
}

func (c *ExecContext) run() {
	gid := goid.Get()
	c.pool.gids.Store(gid, c)
	defer c.pool.gids.Delete(gid)

	for t := range c.tasks {
		c.pool.invoke(t)
		c.done <- struct{}{}
	}
}

func (p *Pool) invoke(t execTask) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Err().Err(&ListenerPanicError{Value: r}).Str("mode", t.mode).Log("listener panicked")
		}
	}()

	t.fn(t.arg)
}
