package inspector

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/yaklabco/docinspect/pkg/broadcast"
)

// Feed is the consumer side of a result stream.
type Feed[T any] interface {
	// Subscribe delivers the latest value, if any, then every later one.
	Subscribe(fn func(T)) *broadcast.Subscription

	// Latest returns the most recently published value.
	Latest() (T, bool)

	// Updates adapts the feed to a channel closed when ctx is done.
	Updates(ctx context.Context) <-chan T
}

// stream pairs a result channel with its generation counter. A result is
// published only if its generation is still the newest one, checked under
// pubMu so that an older result can never follow a newer one.
type stream[T any] struct {
	name  string
	gen   atomic.Uint64
	pubMu sync.Mutex
	ch    *broadcast.Channel[T]
}

func newStream[T any](name string) *stream[T] {
	return &stream[T]{name: name, ch: broadcast.New[T]()}
}

// bump invalidates every outstanding generation and returns the new one.
func (s *stream[T]) bump() uint64 {
	return s.gen.Add(1)
}

func (s *stream[T]) current(gen uint64) bool {
	return s.gen.Load() == gen
}

// deliver hands v to exec and publishes it there if gen is still current.
func (s *stream[T]) deliver(gen uint64, v T, exec broadcast.Executor, rec Recorder) {
	if !s.current(gen) {
		rec.Discarded(s.name, ReasonStale)
		return
	}
	exec.Dispatch(func() {
		s.pubMu.Lock()
		defer s.pubMu.Unlock()

		if !s.current(gen) {
			rec.Discarded(s.name, ReasonStale)
			return
		}
		s.ch.Publish(v)
		rec.Published(s.name)
	})
}
