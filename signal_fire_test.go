package bindables

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFire(t *testing.T) {
	t.Run("delivers to all listeners in reverse connect order", func(t *testing.T) {
		log := []string{}
		var mu sync.Mutex

		s := New[string]()
		s.Connect(func(v string) {
			mu.Lock()
			log = append(log, "A "+v)
			mu.Unlock()
		})
		s.Connect(func(v string) {
			mu.Lock()
			log = append(log, "B "+v)
			mu.Unlock()
		})

		s.Fire("x")

		assert.Equal(t, []string{"B x", "A x"}, log)
	})

	t.Run("isolates a panicking listener", func(t *testing.T) {
		log := []string{}
		var mu sync.Mutex

		s := New[int]()
		s.Connect(func(v int) {
			mu.Lock()
			log = append(log, fmt.Sprintf("ok %d", v))
			mu.Unlock()
		})
		s.Connect(func(int) {
			panic("boom")
		})

		assert.NotPanics(t, func() { s.Fire(7) })
		assert.Equal(t, []string{"ok 7"}, log)
	})

	t.Run("reuses execution contexts across fires", func(t *testing.T) {
		count := 0

		s := New[int]()
		s.Connect(func(int) { count++ })

		for i := 0; i < 100; i++ {
			s.Fire(i)
		}

		assert.Equal(t, 100, count)
	})

	t.Run("fire with no listeners is a no-op", func(t *testing.T) {
		s := New[int]()
		assert.NotPanics(t, func() { s.Fire(1) })
	})
}

func TestFireSync(t *testing.T) {
	t.Run("strict list order on the caller's goroutine", func(t *testing.T) {
		log := []string{}

		s := New[string]()
		s.Connect(func(v string) { log = append(log, "A "+v) })
		s.Connect(func(v string) { log = append(log, "B "+v) })
		s.Connect(func(v string) { log = append(log, "C "+v) })

		s.FireSync("x")

		assert.Equal(t, []string{"C x", "B x", "A x"}, log)
	})

	t.Run("a panic aborts the remaining listeners", func(t *testing.T) {
		log := []string{}

		s := New[int]()
		s.Connect(func(int) { log = append(log, "never") })
		s.Connect(func(int) { panic("boom") })

		assert.PanicsWithValue(t, "boom", func() { s.FireSync(1) })
		assert.Empty(t, log)

		// the aborted listener is still connected for the next fire
		assert.Equal(t, 2, s.ListenerCount())
	})
}

func TestFireAsync(t *testing.T) {
	t.Run("delivers to every listener", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		got := map[string]int{}

		s := New[int]()
		for _, name := range []string{"a", "b", "c"} {
			wg.Add(1)
			s.Connect(func(v int) {
				defer wg.Done()
				mu.Lock()
				got[name] = v
				mu.Unlock()
			})
		}

		s.FireAsync(42)
		wg.Wait()

		assert.Equal(t, map[string]int{"a": 42, "b": 42, "c": 42}, got)
	})

	t.Run("isolates a panicking listener", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(2)

		s := New[int]()
		s.Connect(func(int) { defer wg.Done(); panic("boom") })
		s.Connect(func(int) { wg.Done() })

		assert.NotPanics(t, func() {
			s.FireAsync(1)
			wg.Wait()
		})
	})
}

func TestMutationDuringFire(t *testing.T) {
	t.Run("listener disconnecting itself", func(t *testing.T) {
		log := []string{}

		s := New[string]()
		s.Connect(func(v string) { log = append(log, "A "+v) })
		var conn Connection
		conn = s.Connect(func(v string) {
			log = append(log, "B "+v)
			conn.Disconnect()
		})

		s.Fire("x")
		assert.Equal(t, []string{"B x", "A x"}, log)

		s.Fire("y")
		assert.Equal(t, []string{"B x", "A x", "A y"}, log)
	})

	t.Run("listener disconnecting a not-yet-visited listener", func(t *testing.T) {
		log := []string{}

		s := New[string]()
		target := s.Connect(func(v string) { log = append(log, "A "+v) })
		s.Connect(func(v string) { log = append(log, "Z "+v) })
		s.Connect(func(v string) {
			log = append(log, "B "+v)
			target.Disconnect()
		})

		s.Fire("x")

		// B runs first, removes A; Z is neither skipped nor duplicated
		assert.Equal(t, []string{"B x", "Z x"}, log)
		assert.Equal(t, 2, s.ListenerCount())
	})

	t.Run("listener connecting a new listener", func(t *testing.T) {
		log := []string{}

		s := New[string]()
		s.Connect(func(v string) {
			log = append(log, "A "+v)
			s.Connect(func(v string) { log = append(log, "new "+v) })
		})

		s.Fire("x")
		assert.Equal(t, []string{"A x"}, log)

		s.Fire("y")
		assert.Equal(t, []string{"A x", "new y", "A y"}, log)
	})

	t.Run("listener firing the signal recursively", func(t *testing.T) {
		count := 0

		s := New[int]()
		s.Connect(func(v int) {
			count++
			if v > 0 {
				s.Fire(v - 1)
			}
		})

		s.Fire(3)
		assert.Equal(t, 4, count)
	})
}
