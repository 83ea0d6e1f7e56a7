// Package stream provides the reactive primitives the data layer exposes to
// its consumers: a last-value-replay state cell and a table change notifier.
// Subscribers are independent; a slow subscriber coalesces to the latest value
// rather than blocking the writer.
package stream

import (
	"context"
	"sync"
)

// Cell is a mutable single-value cell with last-value replay. A new
// subscriber immediately receives the current value, then every subsequent
// Set.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]chan T
	next  int
}

// NewCell returns a Cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the current value and pushes it to every subscriber.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	for _, ch := range c.subs {
		offer(ch, v)
	}
}

// Subscribe returns a channel that replays the current value and then emits
// on every Set until ctx is cancelled, at which point the channel is closed.
func (c *Cell[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = ch
	ch <- c.value
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		close(ch)
	}()

	return ch
}

// offer delivers v on a capacity-1 channel, displacing an undelivered older
// value if the subscriber has not caught up.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
