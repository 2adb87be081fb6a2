// Package langdetect names the language of a document from its file name and
// content using go-enry, for display alongside encoding and line ending.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const (
	// PlainText is reported when nothing more specific is detected.
	PlainText = "Text"

	// Binary is reported for content that is not text.
	Binary = "Binary"

	// sampleSize bounds how much content the classifier inspects.
	sampleSize = 8 << 10
)

// classifierCandidates limits the content classifier to common languages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns the display name of the language of a document. filename
// may be empty for unsaved documents.
func Detect(filename string, content []byte) string {
	sample := content
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	if len(sample) > 0 && enry.IsBinary(sample) {
		return Binary
	}

	// Strategy 1: the file name, with linguist heuristics settling
	// ambiguous extensions such as .md.
	if filename != "" {
		if lang := enry.GetLanguage(filepath.Base(filename), sample); lang != "" {
			return lang
		}
	}

	if len(bytes.TrimSpace(sample)) == 0 {
		return PlainText
	}

	// Strategy 2: shebang.
	if lang, safe := enry.GetLanguageByShebang(sample); safe && lang != "" {
		return lang
	}

	// Strategy 3: highly indicative patterns.
	if lang := detectByPattern(sample); lang != "" {
		return lang
	}

	// Strategy 4: classifier, only when confident.
	if lang, safe := enry.GetLanguageByClassifier(sample, classifierCandidates); safe && lang != "" {
		return lang
	}

	return PlainText
}

type pattern struct {
	lang  string
	match func(trimmed []byte, text string) bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []pattern{
	{"Go", func(trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"Python", func(_ []byte, text string) bool {
		return (strings.Contains(text, "def ") && strings.Contains(text, "):")) ||
			strings.Contains(text, "__name__")
	}},
	{"HTML", func(trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"JSON", func(trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`":`))
	}},
	{"Markdown", func(_ []byte, text string) bool {
		return strings.HasPrefix(text, "# ") || strings.Contains(text, "\n## ") ||
			strings.Contains(text, "\n```")
	}},
}

func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	text := string(content)
	for _, p := range patterns {
		if p.match(trimmed, text) {
			return p.lang
		}
	}
	return ""
}
