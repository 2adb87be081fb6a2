package inspector_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/pkg/document"
	"github.com/yaklabco/docinspect/pkg/fileinfo"
	"github.com/yaklabco/docinspect/pkg/inspector"
	"github.com/yaklabco/docinspect/pkg/textstats"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type fakeRecorder struct {
	mu        sync.Mutex
	published map[string]int
	discarded map[string]int
	fetches   map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		published: map[string]int{},
		discarded: map[string]int{},
		fetches:   map[string]int{},
	}
}

func (r *fakeRecorder) ObserveCompute(string, time.Duration) {}

func (r *fakeRecorder) Published(stream string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published[stream]++
}

func (r *fakeRecorder) Discarded(stream, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discarded[stream+"/"+reason]++
}

func (r *fakeRecorder) AttributeFetch(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches[result]++
}

func (r *fakeRecorder) discards(stream, reason string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.discarded[stream+"/"+reason]
}

func (r *fakeRecorder) fetchCount(result string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches[result]
}

func staticSource(calls *atomic.Int32) fileinfo.Source {
	return fileinfo.SourceFunc(func(context.Context, string) (*fileinfo.Attributes, error) {
		if calls != nil {
			calls.Add(1)
		}
		return &fileinfo.Attributes{
			Modified: time.Date(2024, 3, 2, 18, 5, 7, 0, time.UTC),
			Size:     23,
			Owner:    "alice",
			Mode:     0o644,
		}, nil
	})
}

func newInspector(t *testing.T, doc document.Handle, opts inspector.Options) *inspector.Inspector {
	t.Helper()

	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Source == nil {
		opts.Source = staticSource(nil)
	}
	insp, err := inspector.New(doc, opts)
	require.NoError(t, err)
	t.Cleanup(insp.Close)
	return insp
}

// collector records every value delivered to a subscription.
type collector[T any] struct {
	mu   sync.Mutex
	vals []T
}

func collect[T any](feed inspector.Feed[T]) *collector[T] {
	c := &collector[T]{}
	feed.Subscribe(func(v T) {
		c.mu.Lock()
		c.vals = append(c.vals, v)
		c.mu.Unlock()
	})
	return c
}

func (c *collector[T]) all() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.vals...)
}

func (c *collector[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.vals)
}

func (c *collector[T]) last() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vals[len(c.vals)-1]
}

func TestNewRejectsNilDocument(t *testing.T) {
	t.Parallel()

	_, err := inspector.New(nil, inspector.Options{})
	require.ErrorIs(t, err, inspector.ErrNilDocument)
}

func TestActivateCatchesUp(t *testing.T) {
	t.Parallel()

	buf := document.New("hello world\nsecond line", document.Options{})
	buf.SetSelection(document.Caret(5))

	insp := newInspector(t, buf, inspector.Options{})
	assert.Equal(t, inspector.Inactive, insp.Mode())

	insp.Activate(inspector.ActivePartial)
	assert.Equal(t, inspector.ActivePartial, insp.Mode())

	require.Eventually(t, func() bool {
		_, ok := insp.Metrics().Latest()
		return ok
	}, waitFor, tick)

	snap, _ := insp.Metrics().Latest()
	assert.Equal(t, 4, snap.Words)
	assert.Equal(t, 2, snap.Lines)
	loc, line, col, ok := snap.Position()
	require.True(t, ok)
	assert.Equal(t, []int{5, 1, 6}, []int{loc, line, col})
	assert.NotZero(t, snap.Generation)

	insp.Close()
	_, ok = insp.FileInfo().Latest()
	assert.False(t, ok, "partial mode does not maintain file info")
	_, ok = insp.Format().Latest()
	assert.False(t, ok, "partial mode does not maintain format text")
}

func TestActivateFullPublishesEveryStream(t *testing.T) {
	t.Parallel()

	buf := document.New("# Notes\n", document.Options{Location: "/docs/notes.md"})
	insp := newInspector(t, buf, inspector.Options{})
	insp.Activate(inspector.ActiveFull)

	require.Eventually(t, func() bool {
		_, m := insp.Metrics().Latest()
		_, f := insp.FileInfo().Latest()
		_, x := insp.Format().Latest()
		return m && f && x
	}, waitFor, tick)

	info, _ := insp.FileInfo().Latest()
	assert.Equal(t, "/docs/notes.md", info.Path)
	assert.Equal(t, "alice", info.Owner)

	format, _ := insp.Format().Latest()
	assert.Equal(t, "UTF-8", format.Encoding)
	assert.Equal(t, "LF", format.LineEnding)
	assert.Equal(t, "Markdown", format.Language)
}

func TestSubscriptionHeldOnlyWhileActive(t *testing.T) {
	t.Parallel()

	buf := document.New("abc", document.Options{})
	insp := newInspector(t, buf, inspector.Options{})
	assert.Zero(t, buf.Subscribers())

	insp.Activate(inspector.ActivePartial)
	assert.Equal(t, 1, buf.Subscribers())

	insp.Activate(inspector.ActiveFull)
	assert.Equal(t, 1, buf.Subscribers(), "mode changes keep a single subscription")

	insp.Deactivate()
	assert.Zero(t, buf.Subscribers())
	assert.Equal(t, inspector.Inactive, insp.Mode())

	insp.Activate(inspector.ActivePartial)
	insp.Activate(inspector.Inactive)
	assert.Zero(t, buf.Subscribers())
}

func TestEditsRecomputeMetrics(t *testing.T) {
	t.Parallel()

	buf := document.New("one", document.Options{})
	insp := newInspector(t, buf, inspector.Options{})
	insp.Activate(inspector.ActivePartial)

	buf.SetText("one two three")
	require.Eventually(t, func() bool {
		snap, ok := insp.Metrics().Latest()
		return ok && snap.Words == 3
	}, waitFor, tick)

	buf.SetSelection(document.Selection{Location: 4, Length: 3})
	require.Eventually(t, func() bool {
		snap, ok := insp.Metrics().Latest()
		loc, _, _, hasPos := snap.Position()
		return ok && hasPos && loc == 4
	}, waitFor, tick)
}

func TestDeactivateDiscardsInFlightResults(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	src := fileinfo.SourceFunc(func(context.Context, string) (*fileinfo.Attributes, error) {
		close(started)
		<-release // ignores cancellation so the result arrives late
		return &fileinfo.Attributes{Size: 1}, nil
	})

	rec := newFakeRecorder()
	buf := document.New("text", document.Options{Location: "/docs/a.txt"})
	insp := newInspector(t, buf, inspector.Options{Source: src, Recorder: rec})

	insp.Activate(inspector.ActiveFull)
	<-started
	insp.Deactivate()
	close(release)
	insp.Close()

	_, ok := insp.FileInfo().Latest()
	assert.False(t, ok)
	assert.Equal(t, 1, rec.discards(inspector.StreamFileInfo, inspector.ReasonStale))
}

func TestOlderFetchNeverFollowsNewer(t *testing.T) {
	t.Parallel()

	const oldPath, newPath = "/docs/old.txt", "/docs/new.txt"

	started := make(chan string, 4)
	release := make(chan struct{})
	src := fileinfo.SourceFunc(func(_ context.Context, location string) (*fileinfo.Attributes, error) {
		started <- location
		if location == oldPath {
			<-release
		}
		return &fileinfo.Attributes{Size: 1}, nil
	})

	buf := document.New("text", document.Options{Location: oldPath})
	insp := newInspector(t, buf, inspector.Options{Source: src})
	got := collect(insp.FileInfo())

	insp.Activate(inspector.ActiveFull)
	require.Equal(t, oldPath, <-started)

	buf.SetLocation(newPath)
	require.Equal(t, newPath, <-started)
	require.Eventually(t, func() bool { return got.len() == 1 }, waitFor, tick)

	close(release)
	insp.Close()

	snaps := got.all()
	require.Len(t, snaps, 1)
	assert.Equal(t, newPath, snaps[0].Path)
}

func TestMetricsGenerationsIncrease(t *testing.T) {
	t.Parallel()

	buf := document.New("", document.Options{})
	insp := newInspector(t, buf, inspector.Options{})
	got := collect(insp.Metrics())
	insp.Activate(inspector.ActivePartial)

	for _, text := range []string{"a", "a b", "a b c", "a b c d"} {
		buf.SetText(text)
	}

	require.Eventually(t, func() bool {
		return got.len() > 0 && got.last().Words == 4
	}, waitFor, tick)

	snaps := got.all()
	for idx := 1; idx < len(snaps); idx++ {
		assert.Greater(t, snaps[idx].Generation, snaps[idx-1].Generation)
		assert.GreaterOrEqual(t, snaps[idx].Words, snaps[idx-1].Words)
	}
}

func TestNewSubscriberReceivesLatest(t *testing.T) {
	t.Parallel()

	buf := document.New("hello", document.Options{})
	insp := newInspector(t, buf, inspector.Options{})
	insp.Activate(inspector.ActivePartial)

	require.Eventually(t, func() bool {
		_, ok := insp.Metrics().Latest()
		return ok
	}, waitFor, tick)

	var replayed []textstats.Snapshot
	insp.Metrics().Subscribe(func(s textstats.Snapshot) { replayed = append(replayed, s) })
	require.Len(t, replayed, 1)
	assert.Equal(t, 5, replayed[0].Characters)
}

func TestReactivationPublishesOneFreshSnapshot(t *testing.T) {
	t.Parallel()

	buf := document.New("first", document.Options{})
	insp := newInspector(t, buf, inspector.Options{})
	got := collect(insp.Metrics())

	insp.Activate(inspector.ActivePartial)
	require.Eventually(t, func() bool { return got.len() == 1 }, waitFor, tick)

	insp.Deactivate()
	buf.SetText("second")
	buf.SetText("third edit")
	buf.SetText("fourth and final edit")

	insp.Activate(inspector.ActivePartial)
	require.Eventually(t, func() bool { return got.len() == 2 }, waitFor, tick)
	insp.Close()

	snaps := got.all()
	require.Len(t, snaps, 2, "missed edits are not replayed")
	assert.Equal(t, 4, snaps[1].Words)
	assert.Equal(t, 21, snaps[1].Characters)
}

func TestPartialToFullCatchesUpFileInfo(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	buf := document.New("text", document.Options{Location: "/docs/a.txt"})
	insp := newInspector(t, buf, inspector.Options{Source: staticSource(&calls)})

	insp.Activate(inspector.ActivePartial)
	require.Eventually(t, func() bool {
		_, ok := insp.Metrics().Latest()
		return ok
	}, waitFor, tick)
	assert.Zero(t, calls.Load())

	insp.Activate(inspector.ActiveFull)
	require.Eventually(t, func() bool {
		_, f := insp.FileInfo().Latest()
		_, x := insp.Format().Latest()
		return f && x
	}, waitFor, tick)
	assert.Equal(t, int32(1), calls.Load())

	insp.Activate(inspector.ActiveFull)
	assert.Equal(t, int32(1), calls.Load(), "same mode schedules nothing")
}

func TestFetchErrorPublishesEmptyFileInfo(t *testing.T) {
	t.Parallel()

	src := fileinfo.SourceFunc(func(context.Context, string) (*fileinfo.Attributes, error) {
		return nil, errors.New("input/output error")
	})

	rec := newFakeRecorder()
	buf := document.New("text", document.Options{Location: "/docs/a.txt"})
	insp := newInspector(t, buf, inspector.Options{Source: src, Recorder: rec})
	insp.Activate(inspector.ActiveFull)

	require.Eventually(t, func() bool {
		_, ok := insp.FileInfo().Latest()
		return ok
	}, waitFor, tick)

	info, _ := insp.FileInfo().Latest()
	assert.True(t, info.IsEmpty())
	assert.Equal(t, 1, rec.fetchCount(inspector.FetchError))
}

func TestInvalidSelectionIsDiscarded(t *testing.T) {
	t.Parallel()

	rec := newFakeRecorder()
	buf := document.New("hello", document.Options{})
	insp := newInspector(t, buf, inspector.Options{Recorder: rec})
	got := collect(insp.Metrics())

	insp.Activate(inspector.ActivePartial)
	require.Eventually(t, func() bool { return got.len() == 1 }, waitFor, tick)

	buf.SetSelectionRaw(document.Caret(42))
	require.Eventually(t, func() bool {
		return rec.discards(inspector.StreamMetrics, inspector.ReasonInvalidSelection) == 1
	}, waitFor, tick)
	assert.Equal(t, 1, got.len())

	buf.SetSelection(document.Caret(2))
	require.Eventually(t, func() bool { return got.len() == 2 }, waitFor, tick)
	loc, _, _, ok := got.last().Position()
	require.True(t, ok)
	assert.Equal(t, 2, loc)
}

func TestFormatChangesSkipMetricsAndFileInfo(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	rec := newFakeRecorder()
	buf := document.New("text", document.Options{Location: "/docs/a.txt"})
	insp := newInspector(t, buf, inspector.Options{Source: staticSource(&calls), Recorder: rec})
	metrics := collect(insp.Metrics())

	insp.Activate(inspector.ActiveFull)
	require.Eventually(t, func() bool {
		_, f := insp.FileInfo().Latest()
		_, x := insp.Format().Latest()
		return metrics.len() == 1 && f && x
	}, waitFor, tick)

	buf.SetLineEnding(document.LineEndingCRLF)
	require.Eventually(t, func() bool {
		f, ok := insp.Format().Latest()
		return ok && f.LineEnding == "CRLF"
	}, waitFor, tick)

	insp.Close()
	assert.Equal(t, 1, metrics.len())
	assert.Equal(t, int32(1), calls.Load())
}

func TestLocationChangeRefreshesFileInfoAndFormat(t *testing.T) {
	t.Parallel()

	buf := document.New("package main\n", document.Options{})
	insp := newInspector(t, buf, inspector.Options{})
	insp.Activate(inspector.ActiveFull)

	require.Eventually(t, func() bool {
		info, ok := insp.FileInfo().Latest()
		return ok && info.IsEmpty()
	}, waitFor, tick, "unsaved documents have no file info")

	buf.SetLocation("/src/main.go")
	require.Eventually(t, func() bool {
		info, ok := insp.FileInfo().Latest()
		format, fok := insp.Format().Latest()
		return ok && info.Path != "" && fok && format.Language == "Go"
	}, waitFor, tick)
}

func TestFullToPartialStopsAttributeStreams(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	buf := document.New("text", document.Options{Location: "/docs/a.txt"})
	insp := newInspector(t, buf, inspector.Options{Source: staticSource(&calls)})

	insp.Activate(inspector.ActiveFull)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, tick)

	insp.Activate(inspector.ActivePartial)
	buf.TouchAttributes()
	buf.SetText("more text")
	require.Eventually(t, func() bool {
		snap, ok := insp.Metrics().Latest()
		return ok && snap.Words == 2
	}, waitFor, tick)
	assert.Equal(t, int32(1), calls.Load())
}

type countingExecutor struct {
	dispatched atomic.Int32
}

func (e *countingExecutor) Dispatch(fn func()) {
	e.dispatched.Add(1)
	fn()
}

func TestResultsAreDeliveredThroughExecutor(t *testing.T) {
	t.Parallel()

	exec := &countingExecutor{}
	buf := document.New("text", document.Options{})
	insp := newInspector(t, buf, inspector.Options{Executor: exec})
	insp.Activate(inspector.ActivePartial)

	require.Eventually(t, func() bool {
		_, ok := insp.Metrics().Latest()
		return ok
	}, waitFor, tick)
	assert.Equal(t, int32(1), exec.dispatched.Load())
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	buf := document.New("text", document.Options{})
	insp := newInspector(t, buf, inspector.Options{})
	insp.Activate(inspector.ActiveFull)
	insp.Close()
	insp.Close()

	insp.Activate(inspector.ActivePartial)
	assert.Equal(t, inspector.Inactive, insp.Mode(), "closed inspectors stay inactive")
	assert.Zero(t, buf.Subscribers())
}

func TestSubscriberCannotAlterPublishedSnapshots(t *testing.T) {
	t.Parallel()

	buf := document.New("hello world", document.Options{Location: "/docs/notes.txt"})
	buf.SetSelection(document.Caret(2))
	insp := newInspector(t, buf, inspector.Options{})

	insp.Metrics().Subscribe(func(s textstats.Snapshot) {
		s.CursorLocation = 999
		s.Words = -1
	})
	insp.FileInfo().Subscribe(func(s fileinfo.Snapshot) {
		s.Path = "/elsewhere"
	})
	insp.Activate(inspector.ActiveFull)

	require.Eventually(t, func() bool {
		_, m := insp.Metrics().Latest()
		_, f := insp.FileInfo().Latest()
		return m && f
	}, waitFor, tick)

	snap, _ := insp.Metrics().Latest()
	loc, _, _, ok := snap.Position()
	require.True(t, ok)
	assert.Equal(t, 2, loc)
	assert.Equal(t, 2, snap.Words)

	info, _ := insp.FileInfo().Latest()
	assert.Equal(t, "/docs/notes.txt", info.Path)

	var replayed textstats.Snapshot
	insp.Metrics().Subscribe(func(s textstats.Snapshot) { replayed = s })
	assert.Equal(t, snap, replayed)
}

func TestCloseRacingActivateLeavesNoSubscription(t *testing.T) {
	t.Parallel()

	for range 50 {
		buf := document.New("text", document.Options{})
		insp, err := inspector.New(buf, inspector.Options{Logger: logging.Discard(), Source: staticSource(nil)})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for n := range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := range 20 {
					if (n+j)%2 == 0 {
						insp.Activate(inspector.ActiveFull)
					} else {
						insp.Activate(inspector.ActivePartial)
					}
				}
			}()
		}
		insp.Close()
		wg.Wait()

		assert.Equal(t, inspector.Inactive, insp.Mode())
		assert.Zero(t, buf.Subscribers())
	}
}
