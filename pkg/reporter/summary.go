package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/docinspect/internal/ui/pretty"
)

// Summary totals a batch of reports.
type Summary struct {
	Files      int             `json:"files"`
	Failed     int             `json:"failed"`
	Characters int             `json:"characters"`
	Words      int             `json:"words"`
	Lines      int             `json:"lines"`
	Languages  []LanguageCount `json:"languages,omitempty"`
}

// LanguageCount is the number of files detected as one language.
type LanguageCount struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
}

// Summarize implements Reporter.
func (r *TextReporter) Summarize(_ context.Context, s *Summary) (err error) {
	if s == nil {
		return nil
	}
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	count := func(n int) *string {
		text := humanize.Comma(int64(n))
		return &text
	}
	totals := pretty.Section{Title: "Totals", Rows: []pretty.Row{
		{Label: "Files", Value: count(s.Files)},
		{Label: "Failed", Value: count(s.Failed)},
		{Label: "Characters", Value: count(s.Characters)},
		{Label: "Words", Value: count(s.Words)},
		{Label: "Lines", Value: count(s.Lines)},
	}}
	sections := []pretty.Section{totals}

	if len(s.Languages) > 0 {
		langs := pretty.Section{Title: "Languages"}
		for _, lc := range s.Languages {
			langs.Rows = append(langs.Rows, pretty.Row{Label: lc.Language, Value: count(lc.Files)})
		}
		sections = append(sections, langs)
	}

	if _, err := fmt.Fprint(bw, r.formatter.Format("Summary", sections)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// Summarize implements Reporter. The summary is wrapped in a "summary"
// object so it can follow per-file reports in the same stream.
func (r *JSONReporter) Summarize(_ context.Context, s *Summary) (err error) {
	if s == nil {
		return nil
	}
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(struct {
		Summary *Summary `json:"summary"`
	}{s}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
