package textstats

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/docinspect/pkg/document"
)

// ErrInvalidSelection is returned when a selection does not fit the text it
// was captured with, typically because the text changed in between.
var ErrInvalidSelection = errors.New("selection out of bounds")

// Counts are the content-level metrics, independent of the selection.
type Counts struct {
	Characters int
	Words      int
	Index      LineIndex
}

// Count computes the content-level metrics of text.
func Count(text string) Counts {
	return Counts{
		Characters: CountCharacters(text),
		Words:      CountWords(text),
		Index:      BuildLines(text),
	}
}

// Compute derives a Snapshot from text and sel. It fails only with
// ErrInvalidSelection.
func Compute(text string, sel document.Selection) (Snapshot, error) {
	return computeWith(Count(text), text, sel)
}

func computeWith(counts Counts, text string, sel document.Selection) (Snapshot, error) {
	if sel.Location < 0 || sel.Length < 0 || sel.End() > counts.Index.Length {
		return Snapshot{}, fmt.Errorf("%w: %s in text of length %d",
			ErrInvalidSelection, sel, counts.Index.Length)
	}
	if _, ok := document.ByteOffset(text, sel.Location); !ok {
		return Snapshot{}, fmt.Errorf("%w: %s starts inside a surrogate pair", ErrInvalidSelection, sel)
	}
	if _, ok := document.ByteOffset(text, sel.End()); !ok {
		return Snapshot{}, fmt.Errorf("%w: %s ends inside a surrogate pair", ErrInvalidSelection, sel)
	}

	snap := Snapshot{
		Characters: counts.Characters,
		Words:      counts.Words,
		Lines:      counts.Index.Count(),
	}

	// Range selections report their start position.
	line, col := counts.Index.LineAt(sel.Location)
	if line > 0 {
		snap.HasCursor = true
		snap.CursorLocation = sel.Location
		snap.CurrentLine = line
		snap.ColumnInLine = col
	}

	if r, ok := ScalarAt(text, sel); ok {
		snap.SelectedCodePoint = FormatCodePoint(r)
	}

	return snap, nil
}

// CountCharacters returns the number of grapheme clusters in text.
func CountCharacters(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// CountWords returns the number of word segments in text that contain at
// least one letter or number. Segmentation follows UAX #29.
func CountWords(text string) int {
	count := 0
	state := -1
	rest := text
	var word string
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if isWord(word) {
			count++
		}
	}
	return count
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
