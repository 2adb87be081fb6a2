package document

import (
	"errors"
	"sync"
)

// ErrOutOfRange is returned by Replace when the target range does not lie on
// scalar boundaries inside the text.
var ErrOutOfRange = errors.New("range out of bounds")

// Options configures a new Buffer.
type Options struct {
	Encoding   string // default: "utf-8"
	LineEnding LineEnding
	Location   string // empty for an unsaved document
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// Buffer is a concurrency-safe in-memory Handle. Every effective mutation
// bumps Version and notifies subscribers in subscription order, outside the
// lock.
type Buffer struct {
	mu sync.Mutex

	text       string
	textLen    int
	sel        Selection
	encoding   string
	lineEnding LineEnding
	location   string
	version    uint64

	nextID uint64
	subs   []subscriber
}

var _ Handle = (*Buffer)(nil)

func New(text string, opt Options) *Buffer {
	if opt.Encoding == "" {
		opt.Encoding = "utf-8"
	}
	return &Buffer{
		text:       text,
		textLen:    UTF16Len(text),
		encoding:   opt.Encoding,
		lineEnding: opt.LineEnding,
		location:   opt.Location,
	}
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *Buffer) Selection() Selection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sel
}

func (b *Buffer) Encoding() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.encoding
}

func (b *Buffer) LineEnding() LineEnding {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lineEnding
}

func (b *Buffer) Location() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.location
}

func (b *Buffer) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// Subscribe implements Handle.
func (b *Buffer) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of registered observers.
func (b *Buffer) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// SetText replaces the whole text. The selection is clamped to the new
// length and collapsed when it would split a surrogate pair.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	if text == b.text {
		b.mu.Unlock()
		return
	}
	b.text = text
	b.textLen = UTF16Len(text)
	kind := ContentChanged
	if next := b.clampSelection(b.sel); next != b.sel {
		b.sel = next
		kind |= SelectionChanged
	}
	b.commit(kind)
}

// Replace substitutes the text covered by r and leaves a caret after the
// inserted text.
func (b *Buffer) Replace(r Selection, text string) error {
	b.mu.Lock()
	start, okStart := ByteOffset(b.text, r.Location)
	end, okEnd := ByteOffset(b.text, r.End())
	if r.Length < 0 || !okStart || !okEnd {
		b.mu.Unlock()
		return ErrOutOfRange
	}
	b.text = b.text[:start] + text + b.text[end:]
	b.textLen = UTF16Len(b.text)
	b.sel = Caret(r.Location + UTF16Len(text))
	b.commit(ContentChanged | SelectionChanged)
	return nil
}

// SetSelection clamps sel into the text and stores it.
func (b *Buffer) SetSelection(sel Selection) {
	b.mu.Lock()
	next := b.clampSelection(sel)
	if next == b.sel {
		b.mu.Unlock()
		return
	}
	b.sel = next
	b.commit(SelectionChanged)
}

// SetSelectionRaw stores sel without clamping. Hosts use it to mirror
// selections reported by an external view, which may briefly be stale.
func (b *Buffer) SetSelectionRaw(sel Selection) {
	b.mu.Lock()
	if sel == b.sel {
		b.mu.Unlock()
		return
	}
	b.sel = sel
	b.commit(SelectionChanged)
}

func (b *Buffer) SetEncoding(enc string) {
	b.mu.Lock()
	if enc == b.encoding {
		b.mu.Unlock()
		return
	}
	b.encoding = enc
	b.commit(EncodingChanged)
}

func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	if le == b.lineEnding {
		b.mu.Unlock()
		return
	}
	b.lineEnding = le
	b.commit(LineEndingChanged)
}

func (b *Buffer) SetLocation(location string) {
	b.mu.Lock()
	if location == b.location {
		b.mu.Unlock()
		return
	}
	b.location = location
	b.commit(LocationChanged)
}

// TouchAttributes reports that the file at Location changed on disk without
// moving (permissions, owner, timestamps).
func (b *Buffer) TouchAttributes() {
	b.mu.Lock()
	b.commit(LocationChanged)
}

// commit must be called with mu held; it releases mu before notifying.
func (b *Buffer) commit(kind ChangeKind) {
	b.version++
	ch := Change{Kind: kind, Version: b.version}
	subs := append([]subscriber(nil), b.subs...)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(ch)
	}
}

func (b *Buffer) clampSelection(sel Selection) Selection {
	loc := clampInt(sel.Location, 0, b.textLen)
	if _, ok := ByteOffset(b.text, loc); !ok {
		loc--
	}
	if sel.Length <= 0 {
		return Caret(loc)
	}
	end := clampInt(sel.Location+sel.Length, loc, b.textLen)
	if _, ok := ByteOffset(b.text, end); !ok {
		end++
	}
	return Selection{Location: loc, Length: end - loc}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
