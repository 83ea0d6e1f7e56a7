package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifierDeliversTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier()
	ch := n.Subscribe(ctx)

	n.Notify()

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick delivered")
	}
}

func TestNotifierCoalescesTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier()
	ch := n.Subscribe(ctx)

	n.Notify()
	n.Notify()
	n.Notify()

	<-ch
	select {
	case <-ch:
		t.Fatal("ticks should coalesce into one")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifierNoTickBeforeNotify(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier()
	ch := n.Subscribe(ctx)

	select {
	case <-ch:
		t.Fatal("unexpected tick")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventsNoReplay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := NewEvents[error]()
	e.Publish(errors.New("before subscribe"))

	ch := e.Subscribe(ctx)
	select {
	case <-ch:
		t.Fatal("events must not replay")
	case <-time.After(50 * time.Millisecond):
	}

	want := errors.New("after subscribe")
	e.Publish(want)
	assert.Equal(t, want, recv(t, ch))
}
