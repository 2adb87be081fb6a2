package document

import (
	"fmt"
	"strings"
)

// LineEnding is the line terminator style a document is saved with.
type LineEnding uint8

const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
	LineEndingCR
)

func (l LineEnding) String() string {
	switch l {
	case LineEndingLF:
		return "LF"
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	default:
		return fmt.Sprintf("LineEnding(%d)", uint8(l))
	}
}

// ParseLineEnding accepts "lf", "crlf" or "cr" in any case.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lf", "unix":
		return LineEndingLF, nil
	case "crlf", "windows":
		return LineEndingCRLF, nil
	case "cr", "mac":
		return LineEndingCR, nil
	default:
		return LineEndingLF, fmt.Errorf("unknown line ending %q", s)
	}
}

// DetectLineEnding returns the style of the first terminator in text,
// defaulting to LF when the text has none.
func DetectLineEnding(text string) LineEnding {
	idx := strings.IndexAny(text, "\r\n")
	if idx < 0 || text[idx] == '\n' {
		return LineEndingLF
	}
	if idx+1 < len(text) && text[idx+1] == '\n' {
		return LineEndingCRLF
	}
	return LineEndingCR
}
