package inspector

import "sync"

type jobKind int

const (
	jobMetrics jobKind = iota
	jobFormat
	numJobs
)

// worker runs computations on one goroutine. Each job kind has a single
// pending slot; submitting replaces whatever was waiting there.
type worker struct {
	mu      sync.Mutex
	pending [numJobs]func()
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

func newWorker() *worker {
	w := &worker{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

// submit queues job and reports whether it displaced a pending one.
func (w *worker) submit(kind jobKind, job func()) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	replaced := w.pending[kind] != nil
	w.pending[kind] = job
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return replaced
}

func (w *worker) stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.pending = [numJobs]func(){}
	w.mu.Unlock()

	close(w.quit)
	<-w.done
}

func (w *worker) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.quit:
			return
		case <-w.wake:
		}
		for {
			job := w.take()
			if job == nil {
				break
			}
			job()
		}
	}
}

func (w *worker) take() func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, job := range w.pending {
		if job != nil {
			w.pending[i] = nil
			return job
		}
	}
	return nil
}
