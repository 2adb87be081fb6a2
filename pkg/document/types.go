package document

import "fmt"

// Selection is a range [Location, Location+Length) in UTF-16 code units.
// A zero Length is a caret.
type Selection struct {
	Location int
	Length   int
}

// Caret returns an empty selection positioned at offset.
func Caret(offset int) Selection {
	return Selection{Location: offset}
}

// End returns the exclusive end offset.
func (s Selection) End() int {
	return s.Location + s.Length
}

// IsCaret reports whether the selection is empty.
func (s Selection) IsCaret() bool {
	return s.Length == 0
}

func (s Selection) String() string {
	return fmt.Sprintf("{%d, %d}", s.Location, s.Length)
}

// ChangeKind is a bit set of change classes carried by a notification.
type ChangeKind uint8

const (
	ContentChanged ChangeKind = 1 << iota
	SelectionChanged
	EncodingChanged
	LineEndingChanged
	LocationChanged
)

// FormatChanges groups the encoding and line-ending classes.
const FormatChanges = EncodingChanged | LineEndingChanged

// Has reports whether any bit of other is set in k.
func (k ChangeKind) Has(other ChangeKind) bool {
	return k&other != 0
}

func (k ChangeKind) String() string {
	if k == 0 {
		return "none"
	}
	names := []struct {
		bit  ChangeKind
		name string
	}{
		{ContentChanged, "content"},
		{SelectionChanged, "selection"},
		{EncodingChanged, "encoding"},
		{LineEndingChanged, "line-ending"},
		{LocationChanged, "location"},
	}
	out := ""
	for _, n := range names {
		if k&n.bit == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	return out
}

// Change is one notification from a Handle.
type Change struct {
	Kind    ChangeKind
	Version uint64
}

// Handle is the read-only view of a host document.
//
// Subscribe registers fn for change notifications and returns a function that
// removes it. Implementations must not call fn while holding locks that the
// accessors need.
type Handle interface {
	Text() string
	Selection() Selection
	Encoding() string
	LineEnding() LineEnding
	Location() string
	Subscribe(fn func(Change)) (cancel func())
}
