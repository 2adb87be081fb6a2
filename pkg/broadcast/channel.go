// Package broadcast provides a single-slot, last-value-wins publish/subscribe
// channel and the executors used to deliver onto a consumer's context.
package broadcast

import (
	"context"
	"sync"
	"sync/atomic"
)

// Channel holds the latest published value and fans it out to subscribers.
//
// Deliveries are serialized: Publish notifies subscribers synchronously in
// subscription order, and a new subscriber receives the held value before
// any later publication. Callbacks may cancel subscriptions but must not
// Publish to or Subscribe on the same Channel.
type Channel[T any] struct {
	deliverMu sync.Mutex

	mu    sync.Mutex
	value T
	has   bool
	subs  []entry[T]
	next  uint64
	count uint64
}

type entry[T any] struct {
	sub *Subscription
	fn  func(T)
}

// Subscription is returned by Subscribe.
type Subscription struct {
	id        uint64
	cancelled atomic.Bool
	remove    func(uint64)
}

// Cancel stops future deliveries. It is safe to call more than once and
// from inside a callback.
func (s *Subscription) Cancel() {
	if s == nil || s.cancelled.Swap(true) {
		return
	}
	s.remove(s.id)
}

// New returns an empty Channel.
func New[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Publish replaces the held value and notifies current subscribers.
func (c *Channel[T]) Publish(v T) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	c.value = v
	c.has = true
	c.count++
	subs := append([]entry[T](nil), c.subs...)
	c.mu.Unlock()

	for _, e := range subs {
		if e.sub.cancelled.Load() {
			continue
		}
		e.fn(v)
	}
}

// Subscribe registers fn. If a value has been published, fn receives it
// before Subscribe returns.
func (c *Channel[T]) Subscribe(fn func(T)) *Subscription {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	c.next++
	sub := &Subscription{id: c.next, remove: c.remove}
	c.subs = append(c.subs, entry[T]{sub: sub, fn: fn})
	v, has := c.value, c.has
	c.mu.Unlock()

	if has {
		fn(v)
	}
	return sub
}

// Latest returns the held value, with ok false before the first Publish.
func (c *Channel[T]) Latest() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.has
}

// Published returns how many values have been published.
func (c *Channel[T]) Published() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Subscribers returns the number of live subscriptions.
func (c *Channel[T]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Updates adapts the channel to a Go channel that always holds the newest
// undelivered value; older unread values are dropped. The Go channel is
// closed when ctx is done.
func (c *Channel[T]) Updates(ctx context.Context) <-chan T {
	out := make(chan T, 1)
	var mu sync.Mutex
	closed := false

	sub := c.Subscribe(func(v T) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		for {
			select {
			case out <- v:
				return
			default:
			}
			select {
			case <-out:
			default:
			}
		}
	})

	go func() {
		<-ctx.Done()
		sub.Cancel()
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()

	return out
}

func (c *Channel[T]) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.subs {
		if e.sub.id == id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}
