package bindables

import (
	"runtime"
	"sync"
	"time"
)

// Stepper is the host scheduler's frame primitive. Wait blocks the calling
// goroutine until the scheduler's next step; deferred fires call it between
// batches.
type Stepper interface {
	Wait()
}

// goschedStepper is the default: each batch runs on a fresh scheduling
// point, without blocking on an external frame source.
type goschedStepper struct{}

func (goschedStepper) Wait() { runtime.Gosched() }

// ManualStepper is a Stepper driven explicitly by the host (or a test):
// every Step call releases all goroutines currently blocked in Wait.
type ManualStepper struct {
	mu sync.Mutex
	ch chan struct{}
}

func NewManualStepper() *ManualStepper {
	return &ManualStepper{ch: make(chan struct{})}
}

func (m *ManualStepper) Wait() {
	m.mu.Lock()
	ch := m.ch
	m.mu.Unlock()

	<-ch
}

// Step advances the scheduler by one step.
func (m *ManualStepper) Step() {
	m.mu.Lock()
	close(m.ch)
	m.ch = make(chan struct{})
	m.mu.Unlock()
}

// TickerStepper steps on a fixed interval, approximating a frame clock.
// Stop it when no deferred fire can be outstanding anymore.
type TickerStepper struct {
	t *time.Ticker
}

func NewTickerStepper(interval time.Duration) *TickerStepper {
	return &TickerStepper{t: time.NewTicker(interval)}
}

func (s *TickerStepper) Wait() { <-s.t.C }

func (s *TickerStepper) Stop() { s.t.Stop() }
