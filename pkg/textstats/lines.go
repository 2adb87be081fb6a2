package textstats

import (
	"sort"
	"unicode/utf16"
)

// LineInfo holds the bounds of one line in UTF-16 code units.
type LineInfo struct {
	// StartOffset is the offset of the first unit of the line.
	StartOffset int

	// TerminatorStart is where the line terminator begins. For a line
	// without a terminator (the last line), it equals EndOffset.
	TerminatorStart int

	// EndOffset is the offset just after the terminator (or end of text).
	EndOffset int
}

// LineIndex is the line table of a text.
type LineIndex struct {
	Lines []LineInfo

	// Length is the text length in UTF-16 code units.
	Length int
}

// BuildLines indexes text. Recognized terminators are LF, CRLF, CR, NEL
// (U+0085), LINE SEPARATOR (U+2028) and PARAGRAPH SEPARATOR (U+2029). The
// result always has at least one line, and a trailing terminator opens an
// empty final line.
func BuildLines(text string) LineIndex {
	var idx LineIndex
	lineStart := 0
	units := 0
	prevCR := false

	for _, r := range text {
		width := utf16.RuneLen(r)
		switch {
		case r == '\n' && prevCR:
			// Second half of CRLF: extend the line closed at the CR.
			last := &idx.Lines[len(idx.Lines)-1]
			last.EndOffset = units + width
			lineStart = units + width
		case r == '\n' || r == '\r' || r == '\u0085' || r == '\u2028' || r == '\u2029':
			idx.Lines = append(idx.Lines, LineInfo{
				StartOffset:     lineStart,
				TerminatorStart: units,
				EndOffset:       units + width,
			})
			lineStart = units + width
		}
		prevCR = r == '\r'
		units += width
	}

	idx.Lines = append(idx.Lines, LineInfo{
		StartOffset:     lineStart,
		TerminatorStart: units,
		EndOffset:       units,
	})
	idx.Length = units
	return idx
}

// Count returns the number of lines.
func (idx LineIndex) Count() int {
	return len(idx.Lines)
}

// LineAt converts an offset into 1-based line and column numbers. Columns
// count UTF-16 units. Returns (0, 0) when offset is outside [0, Length].
func (idx LineIndex) LineAt(offset int) (int, int) {
	if offset < 0 || offset > idx.Length || len(idx.Lines) == 0 {
		return 0, 0
	}

	lineIdx := sort.Search(len(idx.Lines), func(i int) bool {
		return idx.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(idx.Lines) {
		lineIdx = len(idx.Lines) - 1
	}

	info := idx.Lines[lineIdx]
	return lineIdx + 1, offset - info.StartOffset + 1
}
