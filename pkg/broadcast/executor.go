package broadcast

import "sync"

// Executor runs functions on a consumer's execution context.
type Executor interface {
	Dispatch(fn func())
}

// Inline runs each function immediately on the caller's goroutine.
type Inline struct{}

// Dispatch implements Executor.
func (Inline) Dispatch(fn func()) { fn() }

// Serial runs functions one at a time, in submission order, on a dedicated
// goroutine. Dispatch never blocks.
type Serial struct {
	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

// NewSerial starts a Serial executor.
func NewSerial() *Serial {
	s := &Serial{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Dispatch implements Executor. Functions dispatched after Close are dropped.
func (s *Serial) Dispatch(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Close runs what is already queued, then stops the goroutine.
func (s *Serial) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.stopped
		return
	}
	s.closed = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	<-s.stopped
}

func (s *Serial) loop() {
	defer close(s.stopped)
	for range s.wake {
		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				closed := s.closed
				s.mu.Unlock()
				if closed {
					return
				}
				break
			}
			fn := s.queue[0]
			s.queue[0] = nil
			s.queue = s.queue[1:]
			s.mu.Unlock()

			fn()
		}
	}
}
