// Package watch keeps a document.Buffer in sync with a file on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/pkg/document"
	"github.com/yaklabco/docinspect/pkg/fsutil"
)

// ErrStarted is returned by Start on a second call.
var ErrStarted = errors.New("watcher already started")

// Options configures a Watcher.
type Options struct {
	// Debounce delays applying disk events so bursts from one save
	// collapse into a single reload. Zero applies every event at once.
	Debounce time.Duration
	Logger   *log.Logger
}

// pending accumulates what the next flush must do.
type pending uint8

const (
	pendingAttrs pending = 1 << iota
	pendingReload
)

// Watcher mirrors one file into a Buffer: writes replace the text, metadata
// changes refresh attributes, and removal turns the buffer into an unsaved
// document until the file reappears.
type Watcher struct {
	path     string
	buf      *document.Buffer
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	// stamp is only touched by the loop goroutine.
	stamp fsutil.Stamp

	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// New watches buf.Location(). stamp describes the content buf was loaded
// from, usually the one returned by Load.
func New(buf *document.Buffer, stamp fsutil.Stamp, opts Options) (*Watcher, error) {
	path := buf.Location()
	if path == "" {
		return nil, errors.New("watch: document has no location")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Watcher{
		path:     abs,
		buf:      buf,
		fsw:      fsw,
		debounce: opts.Debounce,
		logger:   logger.With(logging.FieldPath, abs),
		stamp:    stamp,
		done:     make(chan struct{}),
	}, nil
}

// Start watches the file's directory, which survives editors that save by
// renaming a temp file over the original.
func (w *Watcher) Start(ctx context.Context) error {
	err := ErrStarted
	w.startOnce.Do(func() {
		dir := filepath.Dir(w.path)
		if err = w.fsw.Add(dir); err != nil {
			err = fmt.Errorf("watch directory %s: %w", dir, err)
			return
		}
		w.logger.Debug("watching", logging.FieldDebounce, w.debounce)
		w.wg.Add(1)
		go w.loop(ctx)
	})
	return err
}

// Close stops the watcher and waits for an in-progress flush. It is safe
// to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var (
		todo   pending
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.logger.Debug("file event", logging.FieldEvent, event.Op.String())
			todo |= classifyEvent(event.Op)
			if todo == 0 {
				continue
			}
			if w.debounce <= 0 {
				w.flush(ctx, todo)
				todo = 0
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.flush(ctx, todo)
			todo = 0

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", logging.FieldError, err)
		}
	}
}

func classifyEvent(op fsnotify.Op) pending {
	switch {
	case op.Has(fsnotify.Write), op.Has(fsnotify.Create),
		op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return pendingReload
	case op.Has(fsnotify.Chmod):
		return pendingAttrs
	default:
		return 0
	}
}

// flush applies accumulated events. A reload re-reads the file; identical
// bytes only refresh attributes.
func (w *Watcher) flush(ctx context.Context, todo pending) {
	if todo&pendingReload == 0 {
		w.buf.TouchAttributes()
		return
	}

	content, stamp, err := fsutil.ReadFile(ctx, w.path)
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		w.logger.Info("file removed; document is now unsaved")
		w.buf.SetLocation("")
		return
	case err != nil:
		w.logger.Warn("reload failed", logging.FieldError, err)
		return
	}

	if w.buf.Location() != w.path {
		w.logger.Info("file restored")
		w.buf.SetLocation(w.path)
	}

	if stamp.SameContent(w.stamp) {
		w.stamp = stamp
		w.buf.TouchAttributes()
		return
	}

	text, enc, err := fsutil.Decode(content)
	if err != nil {
		w.logger.Warn("reload failed", logging.FieldError, err)
		return
	}
	w.stamp = stamp
	w.buf.SetEncoding(enc)
	w.buf.SetLineEnding(document.DetectLineEnding(text))
	w.buf.SetText(text)
	w.buf.TouchAttributes()
	w.logger.Debug("reloaded", logging.FieldVersion, w.buf.Version())
}
