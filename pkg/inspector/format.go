package inspector

import (
	"golang.org/x/text/encoding/ianaindex"

	"github.com/yaklabco/docinspect/pkg/document"
	"github.com/yaklabco/docinspect/pkg/langdetect"
)

// FormatSnapshot is the display text for a document's encoding, line ending
// and language.
type FormatSnapshot struct {
	Encoding   string
	LineEnding string
	Language   string
	Generation uint64
}

// EncodingName returns the preferred MIME name for an encoding identifier,
// or the identifier itself when it is not a registered charset.
func EncodingName(id string) string {
	if id == "" {
		return ""
	}
	enc, err := ianaindex.MIME.Encoding(id)
	if err != nil || enc == nil {
		return id
	}
	name, err := ianaindex.MIME.Name(enc)
	if err != nil || name == "" {
		return id
	}
	return name
}

func computeFormat(encoding string, le document.LineEnding, location, text string) FormatSnapshot {
	return FormatSnapshot{
		Encoding:   EncodingName(encoding),
		LineEnding: le.String(),
		Language:   langdetect.Detect(location, []byte(text)),
	}
}
