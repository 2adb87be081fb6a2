package textstats

import (
	"fmt"
	"unicode/utf16"

	"github.com/yaklabco/docinspect/pkg/document"
)

// ScalarAt returns the scalar value covered by sel when sel spans exactly one:
// a single code unit that is not half of a pair, or two units forming a
// valid surrogate pair. Any other selection, including one that splits a
// pair or covers two scalars, reports false.
func ScalarAt(text string, sel document.Selection) (rune, bool) {
	if sel.Length != 1 && sel.Length != 2 {
		return 0, false
	}
	if sel.Location < 0 {
		return 0, false
	}

	units := 0
	for _, r := range text {
		if units > sel.Location {
			// sel.Location fell inside the previous scalar's pair.
			return 0, false
		}
		width := utf16.RuneLen(r)
		if units == sel.Location {
			if width != sel.Length {
				return 0, false
			}
			return r, true
		}
		units += width
	}
	return 0, false
}

// FormatCodePoint renders r as "U+" followed by at least four upper-case
// hex digits.
func FormatCodePoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
