// Package inspector keeps live metrics, file information and format text for
// one document. An Inspector computes only while activated; document changes
// invalidate just the streams they affect, and every result carries a
// generation so that superseded work is never published.
package inspector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/pkg/document"
	"github.com/yaklabco/docinspect/pkg/fileinfo"
	"github.com/yaklabco/docinspect/pkg/textstats"
)

// Inspector observes a document.Handle on behalf of one consumer.
type Inspector struct {
	id   string
	doc  document.Handle
	opts Options
	log  *log.Logger

	counter *textstats.Counter
	work    *worker

	metrics  *stream[textstats.Snapshot]
	fileInfo *stream[fileinfo.Snapshot]
	format   *stream[FormatSnapshot]

	// mu guards mode and the subscription. Triggers capture document
	// state and bump generations while holding it, so no trigger can
	// slip in after Deactivate.
	mu          sync.Mutex
	mode        Mode
	closed      bool
	unsubscribe func()
	fetchCancel context.CancelFunc

	baseCtx    context.Context
	baseCancel context.CancelFunc
	fetches    sync.WaitGroup
}

// New creates an inactive Inspector for doc.
func New(doc document.Handle, opts Options) (*Inspector, error) {
	if doc == nil {
		return nil, fmt.Errorf("new inspector: %w", ErrNilDocument)
	}
	opts = opts.withDefaults()

	counter, err := textstats.NewCounter(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("new inspector: %w", err)
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())

	return &Inspector{
		id:         id,
		doc:        doc,
		opts:       opts,
		log:        opts.Logger.With(logging.FieldInspector, id[:8]),
		counter:    counter,
		work:       newWorker(),
		metrics:    newStream[textstats.Snapshot](StreamMetrics),
		fileInfo:   newStream[fileinfo.Snapshot](StreamFileInfo),
		format:     newStream[FormatSnapshot](StreamFormat),
		baseCtx:    ctx,
		baseCancel: cancel,
	}, nil
}

// ID identifies the Inspector in logs.
func (i *Inspector) ID() string { return i.id }

// Metrics is the stream of metrics snapshots.
func (i *Inspector) Metrics() Feed[textstats.Snapshot] { return i.metrics.ch }

// FileInfo is the stream of file attribute snapshots. It is maintained only
// in ActiveFull.
func (i *Inspector) FileInfo() Feed[fileinfo.Snapshot] { return i.fileInfo.ch }

// Format is the stream of encoding, line ending and language text. It is
// maintained only in ActiveFull.
func (i *Inspector) Format() Feed[FormatSnapshot] { return i.format.ch }

// Mode returns the current activation state.
func (i *Inspector) Mode() Mode {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.mode
}

// Activate sets the activation mode. Coming from Inactive it subscribes to
// the document and schedules a catch-up computation of every stream the mode
// maintains. Moving from ActivePartial to ActiveFull catches up the file info
// and format streams; moving down to ActivePartial stops them.
func (i *Inspector) Activate(mode Mode) {
	if mode == Inactive {
		i.Deactivate()
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed || mode == i.mode {
		return
	}
	prev := i.mode
	i.mode = mode
	i.log.Debug("activate", logging.FieldMode, mode, "from", prev)

	if prev == Inactive {
		i.unsubscribe = i.doc.Subscribe(i.onChange)
		i.scheduleMetricsLocked()
	}

	switch {
	case mode.includesAttributes() && !prev.includesAttributes():
		i.scheduleFormatLocked()
		i.scheduleFileInfoLocked()
	case !mode.includesAttributes() && prev.includesAttributes():
		i.format.bump()
		i.fileInfo.bump()
		i.cancelFetchLocked()
	}
}

// Deactivate stops all computation, releases the document subscription and
// discards any result still in flight.
func (i *Inspector) Deactivate() {
	i.mu.Lock()
	unsubscribe := i.deactivateLocked()
	i.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// deactivateLocked must be called with mu held. It returns the document
// subscription's cancel function, to be called after mu is released.
func (i *Inspector) deactivateLocked() func() {
	if i.mode == Inactive {
		return nil
	}
	i.log.Debug("deactivate", "from", i.mode)
	i.mode = Inactive
	unsubscribe := i.unsubscribe
	i.unsubscribe = nil
	i.metrics.bump()
	i.format.bump()
	i.fileInfo.bump()
	i.cancelFetchLocked()
	return unsubscribe
}

// Close deactivates the Inspector and stops its goroutines. Published values
// stay readable through Latest.
//
// Close waits for the worker to exit, so it must not be called from a
// subscriber callback while results are delivered inline.
func (i *Inspector) Close() {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return
	}
	i.closed = true
	unsubscribe := i.deactivateLocked()
	i.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	i.baseCancel()
	i.work.stop()
	i.fetches.Wait()
}

// onChange routes a document notification to the affected streams.
func (i *Inspector) onChange(ch document.Change) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.mode == Inactive {
		return
	}
	i.log.Debug("document changed", logging.FieldChange, ch.Kind, logging.FieldVersion, ch.Version)

	if ch.Kind.Has(document.ContentChanged | document.SelectionChanged) {
		i.scheduleMetricsLocked()
	}
	if !i.mode.includesAttributes() {
		return
	}
	if ch.Kind.Has(document.FormatChanges | document.LocationChanged) {
		i.scheduleFormatLocked()
	}
	if ch.Kind.Has(document.LocationChanged) {
		i.scheduleFileInfoLocked()
	}
}

func (i *Inspector) scheduleMetricsLocked() {
	gen := i.metrics.bump()
	text := i.doc.Text()
	sel := i.doc.Selection()

	replaced := i.work.submit(jobMetrics, func() {
		i.computeMetrics(gen, text, sel)
	})
	if replaced {
		i.opts.Recorder.Discarded(StreamMetrics, ReasonCoalesced)
	}
}

func (i *Inspector) computeMetrics(gen uint64, text string, sel document.Selection) {
	if !i.metrics.current(gen) {
		i.opts.Recorder.Discarded(StreamMetrics, ReasonStale)
		return
	}

	start := time.Now()
	snap, err := i.counter.Compute(text, sel)
	i.opts.Recorder.ObserveCompute(StreamMetrics, time.Since(start))
	if err != nil {
		i.log.Debug("metrics discarded",
			logging.FieldReason, ReasonInvalidSelection,
			logging.FieldSelection, sel,
			logging.FieldGeneration, gen,
			logging.FieldError, err)
		i.opts.Recorder.Discarded(StreamMetrics, ReasonInvalidSelection)
		return
	}
	snap.Generation = gen

	i.metrics.deliver(gen, snap, i.opts.Executor, i.opts.Recorder)
}

func (i *Inspector) scheduleFormatLocked() {
	gen := i.format.bump()
	encoding := i.doc.Encoding()
	lineEnding := i.doc.LineEnding()
	location := i.doc.Location()
	text := i.doc.Text()

	replaced := i.work.submit(jobFormat, func() {
		if !i.format.current(gen) {
			i.opts.Recorder.Discarded(StreamFormat, ReasonStale)
			return
		}
		start := time.Now()
		snap := computeFormat(encoding, lineEnding, location, text)
		snap.Generation = gen
		i.opts.Recorder.ObserveCompute(StreamFormat, time.Since(start))
		i.format.deliver(gen, snap, i.opts.Executor, i.opts.Recorder)
	})
	if replaced {
		i.opts.Recorder.Discarded(StreamFormat, ReasonCoalesced)
	}
}

// scheduleFileInfoLocked starts an asynchronous attribute fetch, cancelling
// the previous one.
func (i *Inspector) scheduleFileInfoLocked() {
	if i.closed {
		return
	}
	gen := i.fileInfo.bump()
	location := i.doc.Location()

	i.cancelFetchLocked()
	ctx, cancel := context.WithCancel(i.baseCtx)
	i.fetchCancel = cancel

	i.fetches.Add(1)
	go func() {
		defer i.fetches.Done()
		defer cancel()
		i.fetchFileInfo(ctx, gen, location)
	}()
}

func (i *Inspector) fetchFileInfo(ctx context.Context, gen uint64, location string) {
	start := time.Now()
	snap, err := fileinfo.Load(ctx, i.opts.Source, location, i.opts.FileInfo)
	i.opts.Recorder.ObserveCompute(StreamFileInfo, time.Since(start))
	if location != "" {
		i.opts.Recorder.AttributeFetch(fetchResult(err))
	}
	if err != nil {
		i.log.Debug("file attributes unavailable",
			logging.FieldPath, location,
			logging.FieldGeneration, gen,
			logging.FieldError, err)
	}

	i.fileInfo.deliver(gen, snap, i.opts.Executor, i.opts.Recorder)
}

func (i *Inspector) cancelFetchLocked() {
	if i.fetchCancel != nil {
		i.fetchCancel()
		i.fetchCancel = nil
	}
}
