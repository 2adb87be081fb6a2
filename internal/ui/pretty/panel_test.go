package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/docinspect/internal/ui/pretty"
)

func strPtr(s string) *string { return &s }

func TestPanelFormatterAlignsLabels(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewPanelFormatter(pretty.NewStyles(false), 80)
	out := formatter.Format("notes.txt", []pretty.Section{
		{Title: "Metrics", Rows: []pretty.Row{
			{Label: "Words", Value: strPtr("4")},
			{Label: "Code point", Value: nil},
		}},
		{Title: "Empty"},
		{Title: "File", Rows: []pretty.Row{
			{Label: "Size", Value: strPtr("23 B (23 bytes)")},
		}},
	})

	want := strings.Join([]string{
		"notes.txt",
		"Metrics",
		"  Words       4",
		"  Code point  n/a",
		"File",
		"  Size        23 B (23 bytes)",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestPanelFormatterTruncatesLongValues(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewPanelFormatter(pretty.NewStyles(false), 20)
	out := formatter.Format("", []pretty.Section{
		{Title: "File", Rows: []pretty.Row{
			{Label: "Path", Value: strPtr("/a/very/long/path/to/a/document.txt")},
		}},
	})

	// 20 columns minus indent (2), label (4) and gap (2) leaves 12.
	assert.Equal(t, "File\n  Path  /a/very/l...\n", out)
}
