package textstats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docinspect/pkg/document"
	"github.com/yaklabco/docinspect/pkg/textstats"
)

func TestSelectedCodePoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		sel  document.Selection
		want string // empty means absent
	}{
		{"single ascii unit", "abc", document.Selection{Location: 1, Length: 1}, "U+0062"},
		{"last single-unit scalar", "\uFFFF", document.Selection{Location: 0, Length: 1}, "U+FFFF"},
		{"first pair scalar", "\U00010000", document.Selection{Location: 0, Length: 2}, "U+10000"},
		{"last pair scalar", "x\U0010FFFF", document.Selection{Location: 1, Length: 2}, "U+10FFFF"},
		{"emoji pair", "a\U0001F600b", document.Selection{Location: 1, Length: 2}, "U+1F600"},
		{"nul", "\x00", document.Selection{Location: 0, Length: 1}, "U+0000"},
		{"two separate scalars", "ab", document.Selection{Location: 0, Length: 2}, ""},
		{"scalar plus combining mark", "e\u0301", document.Selection{Location: 0, Length: 2}, ""},
		{"caret", "abc", document.Caret(1), ""},
		{"three units", "abc", document.Selection{Location: 0, Length: 3}, ""},
		{"at end of text", "abc", document.Selection{Location: 3, Length: 0}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			snap, err := textstats.Compute(tc.text, tc.sel)
			require.NoError(t, err)
			assert.Equal(t, tc.want, snap.SelectedCodePoint)
			assert.Equal(t, tc.want != "", snap.HasCodePoint())
		})
	}
}

func TestScalarAtReturnsRune(t *testing.T) {
	t.Parallel()

	r, ok := textstats.ScalarAt("\U00010000", document.Selection{Location: 0, Length: 2})
	require.True(t, ok)
	assert.Equal(t, rune(0x10000), r)

	_, ok = textstats.ScalarAt("a", document.Selection{Location: -1, Length: 1})
	assert.False(t, ok)
}

// Compute rejects these selections outright; ScalarAt reports no scalar.
func TestScalarAtRejectsSplitPairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		sel  document.Selection
	}{
		{"high half of pair", "\U0001F600", document.Selection{Location: 0, Length: 1}},
		{"low half of pair", "\U0001F600", document.Selection{Location: 1, Length: 1}},
		{"straddles pair boundary", "\U0001F600\U0001F601", document.Selection{Location: 1, Length: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, ok := textstats.ScalarAt(tc.text, tc.sel)
			assert.False(t, ok)

			_, err := textstats.Compute(tc.text, tc.sel)
			require.ErrorIs(t, err, textstats.ErrInvalidSelection)
		})
	}
}

func TestFormatCodePoint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "U+0041", textstats.FormatCodePoint('A'))
	assert.Equal(t, "U+00E9", textstats.FormatCodePoint(0xE9))
	assert.Equal(t, "U+1F600", textstats.FormatCodePoint(0x1F600))
	assert.Equal(t, "U+10FFFF", textstats.FormatCodePoint(0x10FFFF))
}
