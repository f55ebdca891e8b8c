package resilience

import (
	"context"
	"sync"
)

// SingleFlight collapses concurrent loads of the same key into one call.
// A waiter whose context ends stops waiting; the shared call keeps running
// for the others.
type SingleFlight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flight[T]
}

type flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Do returns fn's result for key and whether it was shared with another caller.
func (g *SingleFlight[T]) Do(ctx context.Context, key string, fn func() (T, error)) (T, bool, error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flight[T])
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		select {
		case <-c.done:
			return c.val, true, c.err
		case <-ctx.Done():
			var zero T
			return zero, true, ctx.Err()
		}
	}

	c := &flight[T]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)
	}()
	c.val, c.err = fn()
	return c.val, false, c.err
}
