package langdetect

import (
	"strings"
	"testing"
)

func BenchmarkDetectByName(b *testing.B) {
	content := []byte("# Title\n\nSome prose.\n")
	b.ResetTimer()
	for range b.N {
		Detect("README.md", content)
	}
}

func BenchmarkDetectLargeUnsaved(b *testing.B) {
	content := []byte(strings.Repeat("The quick brown fox jumps over the lazy dog.\n", 2000))
	b.ResetTimer()
	for range b.N {
		Detect("", content)
	}
}
