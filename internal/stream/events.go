package stream

import (
	"context"
	"sync"
)

// Events broadcasts values to subscribers without replay: a subscriber only
// sees events published after it subscribed. Delivery coalesces like Cell.
type Events[T any] struct {
	mu   sync.Mutex
	subs map[int]chan T
	next int
}

// NewEvents returns an empty Events broadcaster.
func NewEvents[T any]() *Events[T] {
	return &Events[T]{subs: make(map[int]chan T)}
}

// Publish pushes v to every current subscriber.
func (e *Events[T]) Publish(v T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		offer(ch, v)
	}
}

// Subscribe returns a channel of future events, closed when ctx is cancelled.
func (e *Events[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = ch
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
		close(ch)
	}()

	return ch
}
