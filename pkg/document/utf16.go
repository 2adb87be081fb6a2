package document

import "unicode/utf16"

// UTF16Len returns the length of s in UTF-16 code units. Invalid UTF-8 bytes
// count as one unit each (they decode to U+FFFD).
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// ByteOffset converts a UTF-16 offset into a byte offset in s. It reports
// false when off is negative, past the end, or splits a surrogate pair.
func ByteOffset(s string, off int) (int, bool) {
	if off < 0 {
		return 0, false
	}
	units := 0
	for i, r := range s {
		if units == off {
			return i, true
		}
		units += utf16.RuneLen(r)
		if units > off {
			return 0, false
		}
	}
	if units == off {
		return len(s), true
	}
	return 0, false
}
