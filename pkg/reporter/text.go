package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/docinspect/internal/ui/pretty"
)

//nolint:gochecknoglobals // Read-only lookup table.
var sectionTitles = map[string]string{
	SectionMetrics: "Metrics",
	SectionFile:    "File",
	SectionFormat:  "Format",
}

// TextReporter formats reports as aligned, styled panels.
type TextReporter struct {
	opts      Options
	fields    []Field
	formatter *pretty.PanelFormatter
}

func newTextReporter(opts Options, selected []Field) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:      opts,
		fields:    selected,
		formatter: pretty.NewPanelFormatter(pretty.NewStyles(colorEnabled), pretty.TerminalWidth(opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, report *Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil {
		return nil
	}

	var sections []pretty.Section
	index := map[string]int{}
	for _, f := range r.fields {
		if !r.sectionAvailable(report, f.Section) {
			continue
		}
		pos, ok := index[f.Section]
		if !ok {
			pos = len(sections)
			index[f.Section] = pos
			sections = append(sections, pretty.Section{Title: sectionTitles[f.Section]})
		}
		row := pretty.Row{Label: f.Label}
		if text, present := f.Text(report); present {
			row.Value = &text
		}
		sections[pos].Rows = append(sections[pos].Rows, row)
	}

	if _, err := fmt.Fprint(bw, r.formatter.Format(report.Document, sections)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// sectionAvailable reports whether the stream behind section has published.
func (r *TextReporter) sectionAvailable(report *Report, section string) bool {
	switch section {
	case SectionMetrics:
		return report.Metrics != nil
	case SectionFile:
		return report.FileInfo != nil
	case SectionFormat:
		return report.Format != nil
	default:
		return false
	}
}
